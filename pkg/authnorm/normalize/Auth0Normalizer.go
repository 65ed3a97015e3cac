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
)

const (
	auth0SuccessLogin      = "Success Login"
	auth0SuccessSilentAuth = "Success Silent Auth"
)

func auth0Descriptor() descriptor.Descriptor {
	return descriptor.Descriptor{
		Name: string(Auth0),
		Tags: []descriptor.TagConstraint{
			{Path: "_type", Value: "event"},
		},
		Queries: []descriptor.QueryFragment{
			{Field: "tags", Fragment: "auth0"},
		},
	}
}

func normalizeAuth0(evt events.RawEvent) events.Result {
	res := newResult(Auth0)
	if !copyTimestamp(evt, &res) {
		return res
	}
	details, ok := evt.Object(detailsField)
	if !ok {
		return res
	}
	typ, _ := nonEmptyString(details.Get("type"))
	if typ != auth0SuccessLogin && typ != auth0SuccessSilentAuth {
		return res
	}
	ip, ok := address(details.Get("sourceipaddress"))
	if !ok {
		return res
	}
	user, ok := nonEmptyString(details.Get("username"))
	if !ok {
		return res
	}
	res.Principal = user
	res.SourceIPV4 = ip
	res.Valid = true
	return res
}
