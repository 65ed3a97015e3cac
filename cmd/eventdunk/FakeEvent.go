// Copyright 2024 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"net/netip"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"
)

var failureSummaries = []string{
	"[audit] failed login of {person.last}#### from ###.###.###.###",
	"[audit] password change for {person.last}####",
	"{hacker.verb} {hacker.noun}",
}

var oktaOtherActions = []string{
	"core.user.config.password_update.success",
	"app.user_management.push_password_update",
	"core.user_auth.login_failed",
}

// fakeEvent returns an event which the normalizer for v should accept if valid is true and reject otherwise.
func fakeEvent(v normalize.Variant, valid bool) map[string]any {
	ts := gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()).UTC().Format(time.RFC3339)
	ip := fakeAddress()
	// Some last names contain spaces, which no source puts in a login name
	user := strings.ReplaceAll(gofakeit.Username(), " ", "")

	switch v {
	case normalize.Auth0:
		typ := gofakeit.RandString([]string{"Success Login", "Success Silent Auth"})
		if !valid {
			typ = gofakeit.RandString([]string{"Failed Login", "Success Logout", "Failed Silent Auth"})
		}
		return map[string]any{
			"_type":        "event",
			"tags":         []string{"auth0"},
			"utctimestamp": ts,
			"details": map[string]any{
				"type":            typ,
				"sourceipaddress": ip,
				"username":        user,
			},
		}
	case normalize.Bmo:
		summary := "[audit] successful login of " + user + " from " + ip
		if !valid {
			summary = gofakeit.Generate(gofakeit.RandString(failureSummaries))
		}
		return map[string]any{
			"_type":        "event",
			"category":     "syslog",
			"utctimestamp": ts,
			"summary":      summary,
			"details":      map[string]any{"program": "apache"},
		}
	case normalize.Duo:
		summary := "authentication SUCCESS"
		if !valid {
			summary = gofakeit.RandString([]string{"authentication FAILURE", "enrollment SUCCESS"})
		}
		return map[string]any{
			"type":         "event",
			"tags":         []string{"duosecurity", "logs"},
			"utctimestamp": ts,
			"summary":      summary,
			"details": map[string]any{
				"sourceipaddress": ip,
				"username":        user,
			},
		}
	case normalize.Google:
		name := "login_success"
		if !valid {
			name = gofakeit.RandString([]string{"login_failure", "logout", "login_challenge"})
		}
		return map[string]any{
			"_type":        "google",
			"category":     "google",
			"utctimestamp": ts,
			"details": map[string]any{
				"events_name":     name,
				"sourceipaddress": ip,
				"actor_email":     gofakeit.Email(),
			},
		}
	case normalize.Okta, normalize.OktaLegacy:
		action := gofakeit.RandString([]string{"core.user_auth.login_success", "app.auth.sso", "app.ldap.login.success"})
		actor := map[string]any{"ipAddress": ip}
		details := map[string]any{"actors": []map[string]any{actor}}
		if !valid {
			action = gofakeit.RandString(oktaOtherActions)
		}
		// Without a login anywhere the legacy normalizer rejects the event
		if valid || v == normalize.Okta {
			actor["login"] = user
			details["targets"] = []map[string]any{{"login": gofakeit.Email()}}
		}
		details["action"] = map[string]any{"objectType": action}
		return map[string]any{
			"_type":        "okta",
			"category":     "okta",
			"utctimestamp": ts,
			"details":      details,
		}
	default:
		return map[string]any{}
	}
}

// fakeAddress returns a public address, consumers discard logins from internal ones.
func fakeAddress() string {
	for {
		ip := gofakeit.IPv4Address()
		addr, err := netip.ParseAddr(ip)
		if err == nil && !events.IsInternalAddress(addr) {
			return ip
		}
	}
}
