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

package normalize

import (
	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/tidwall/gjson"
)

// Action object types which denote a successful login.
const (
	oktaLdapLoginSuccess     = "app.ldap.login.success"
	oktaAuthSso              = "app.auth.sso"
	oktaAdAgentUserAuth      = "app.ad.agent.user-auth-and-update"
	oktaUserAuthLoginSuccess = "core.user_auth.login_success"
)

func oktaDescriptor(v Variant) descriptor.Descriptor {
	return descriptor.Descriptor{
		Name: string(v),
		Tags: []descriptor.TagConstraint{
			{Path: "_type", Value: "okta"},
			{Path: "category", Value: "okta"},
		},
	}
}

func isOktaLogin(objectType string) bool {
	switch objectType {
	case oktaLdapLoginSuccess, oktaAuthSso, oktaAdAgentUserAuth, oktaUserAuthLoginSuccess:
		return true
	default:
		return false
	}
}

func normalizeOkta(evt events.RawEvent) events.Result {
	res := newResult(Okta)
	if !copyTimestamp(evt, &res) {
		return res
	}
	details, ok := evt.Object(detailsField)
	if !ok {
		return res
	}
	objectType, ok := nonEmptyString(details.Get("action.objectType"))
	if !ok || !isOktaLogin(objectType) {
		return res
	}
	return extractOktaIdentity(evt, res)
}

// normalizeOktaLegacy is the older Okta normalizer which does not look at the action at all,
// any event with a login in its actors or targets is accepted.
func normalizeOktaLegacy(evt events.RawEvent) events.Result {
	res := newResult(OktaLegacy)
	copyTimestamp(evt, &res)
	if _, ok := evt.Object(detailsField); !ok {
		return res
	}
	return extractOktaIdentity(evt, res)
}

// extractOktaIdentity walks every actor and then every target. There is no early exit: a later element
// overwrites what an earlier one set, and a target login overrides an actor login.
func extractOktaIdentity(evt events.RawEvent, res events.Result) events.Result {
	var principal, ip string
	actors, ok := oktaList(evt, "actors")
	if !ok {
		return res
	}
	for _, actor := range actors {
		if !actor.IsObject() {
			return res
		}
		if r := actor.Get("ipAddress"); r.Exists() {
			if r.Type != gjson.String {
				return res
			}
			// A later actor's address replaces the earlier one even when it is the null address,
			// so an address is never paired with another actor's login.
			ip, _ = address(r)
		}
		if r := actor.Get("login"); r.Exists() {
			if r.Type != gjson.String {
				return res
			}
			if r.Str != "" {
				principal = r.Str
			}
		}
	}
	targets, ok := oktaList(evt, "targets")
	if !ok {
		return res
	}
	for _, target := range targets {
		if !target.IsObject() {
			return res
		}
		if r := target.Get("login"); r.Exists() {
			if r.Type != gjson.String {
				return res
			}
			if r.Str != "" {
				principal = r.Str
			}
		}
	}
	if ip != "" {
		res.SourceIPV4 = ip
	}
	if principal == "" {
		return res
	}
	res.Principal = principal
	res.Valid = true
	return res
}

// oktaList returns the elements of an optional list. A value which is present but not an array is malformed.
func oktaList(evt events.RawEvent, key string) ([]gjson.Result, bool) {
	path := detailsField + "." + key
	if !evt.Has(path) {
		return nil, true
	}
	return evt.Array(path)
}
