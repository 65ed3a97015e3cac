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
	"encoding/json"

	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/tidwall/gjson"
)

const (
	timestampField = "utctimestamp"
	detailsField   = "details"

	// nullAddress means the source did not know the address.
	nullAddress = "0.0.0.0"
)

func newResult(v Variant) events.Result {
	return events.Result{Name: string(v)}
}

// copyTimestamp copies the event timestamp into the result if it is a string or a number.
// It happens before any other check so that rejected results still carry the timestamp.
func copyTimestamp(evt events.RawEvent, res *events.Result) bool {
	r := evt.Get(timestampField)
	if r.Type != gjson.String && r.Type != gjson.Number {
		return false
	}
	res.Timestamp = json.RawMessage(r.Raw)
	return true
}

func nonEmptyString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String || r.Str == "" {
		return "", false
	}
	return r.Str, true
}

// address returns a usable source address. The null address counts as no address at all.
func address(r gjson.Result) (string, bool) {
	s, ok := nonEmptyString(r)
	if !ok || s == nullAddress {
		return "", false
	}
	return s, true
}
