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

package descriptor

import (
	"strings"

	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/tidwall/gjson"
)

// Matches evaluates the descriptor against an event the way a dispatcher would.
// A match only makes the event a candidate, the normalizer still decides whether the event is relevant.
func (d *Descriptor) Matches(evt events.RawEvent) bool {
	for _, tag := range d.Tags {
		if !matchesTag(evt, tag) {
			return false
		}
	}
	for _, group := range d.QueryGroups() {
		if !matchesGroup(evt, group) {
			return false
		}
	}
	return true
}

func matchesTag(evt events.RawEvent, tag TagConstraint) bool {
	r := evt.Get(tag.Path)
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String() == tag.Value
	default:
		return false
	}
}

func matchesGroup(evt events.RawEvent, group QueryGroup) bool {
	r := evt.Get(group.Field)
	var texts []string
	if r.IsArray() {
		for _, elem := range r.Array() {
			if elem.Type == gjson.String {
				texts = append(texts, elem.Str)
			}
		}
	} else if r.Type == gjson.String {
		texts = append(texts, r.Str)
	}
	for _, text := range texts {
		for _, frag := range group.Fragments {
			if strings.Contains(text, frag) {
				return true
			}
		}
	}
	return false
}
