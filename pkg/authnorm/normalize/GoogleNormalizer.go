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

const googleLoginSuccess = "login_success"

// Google events only label failures explicitly. An event without a label is treated as a successful login.
var googleLabelFields = [...]string{"events_name", "type"}

func googleDescriptor() descriptor.Descriptor {
	return descriptor.Descriptor{
		Name: string(Google),
		Tags: []descriptor.TagConstraint{
			{Path: "_type", Value: "google"},
			{Path: "category", Value: "google"},
		},
	}
}

func normalizeGoogle(evt events.RawEvent) events.Result {
	res := newResult(Google)
	copyTimestamp(evt, &res)
	details, ok := evt.Object(detailsField)
	if !ok {
		return res
	}
	for _, f := range googleLabelFields {
		label := details.Get(f)
		if label.Exists() && (label.Type != gjson.String || label.Str != googleLoginSuccess) {
			return res
		}
	}
	// The address is copied before the principal is known, so an invalid result may still carry it.
	if ip, ok := address(details.Get("sourceipaddress")); ok {
		res.SourceIPV4 = ip
	}
	email, ok := nonEmptyString(details.Get("actor_email"))
	if !ok {
		return res
	}
	res.Principal = email
	res.Valid = true
	return res
}
