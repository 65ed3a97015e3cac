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
	"regexp"

	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
)

// Apache audit lines look like "[audit] ... successful login of <user> from <address> ...".
var bmoLoginRegex = regexp.MustCompile(`^.*successful login of (\S+) from (\S+).*`)

func bmoDescriptor() descriptor.Descriptor {
	return descriptor.Descriptor{
		Name: string(Bmo),
		Tags: []descriptor.TagConstraint{
			{Path: "_type", Value: "event"},
			{Path: "category", Value: "syslog"},
			{Path: "details.program", Value: "apache"},
		},
		Queries: []descriptor.QueryFragment{
			{Field: "summary", Fragment: "[audit]"},
			{Field: "summary", Fragment: "login"},
		},
	}
}

func normalizeBmo(evt events.RawEvent) events.Result {
	res := newResult(Bmo)
	if !copyTimestamp(evt, &res) {
		return res
	}
	summary, ok := evt.String("summary")
	if !ok {
		return res
	}
	match := bmoLoginRegex.FindStringSubmatch(summary)
	if match == nil {
		return res
	}
	if match[2] == nullAddress {
		return res
	}
	res.Principal = match[1]
	res.SourceIPV4 = match[2]
	res.Valid = true
	return res
}
