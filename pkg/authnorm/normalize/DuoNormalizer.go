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
	"strings"

	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
)

const duoSuccessText = "authentication SUCCESS"

func duoDescriptor() descriptor.Descriptor {
	return descriptor.Descriptor{
		Name: string(Duo),
		Tags: []descriptor.TagConstraint{
			{Path: "type", Value: "event"},
		},
		Queries: []descriptor.QueryFragment{
			{Field: "tags", Fragment: "duosecurity"},
			{Field: "tags", Fragment: "logs"},
		},
	}
}

func normalizeDuo(evt events.RawEvent) events.Result {
	res := newResult(Duo)
	if !copyTimestamp(evt, &res) {
		return res
	}
	summary, ok := evt.String("summary")
	if !ok || !strings.Contains(summary, duoSuccessText) {
		return res
	}
	details, ok := evt.Object(detailsField)
	if !ok {
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
