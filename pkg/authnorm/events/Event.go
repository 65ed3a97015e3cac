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

package events

import (
	"github.com/tidwall/gjson"
)

// RawEvent is a single event as received from an upstream source. It has no fixed schema, so every
// lookup reports whether the value was present and what JSON type it had.
type RawEvent struct {
	raw []byte
}

func NewRawEvent(raw []byte) RawEvent {
	return RawEvent{raw: append([]byte(nil), raw...)}
}

func (e *RawEvent) UnmarshalJSON(b []byte) error {
	e.raw = append(e.raw[:0], b...)
	return nil
}

func (e RawEvent) MarshalJSON() ([]byte, error) {
	if len(e.raw) == 0 {
		return []byte("null"), nil
	}
	return e.raw, nil
}

func (e RawEvent) Bytes() []byte {
	return e.raw
}

// Get resolves a dotted path such as "details.sourceipaddress".
// Lookups through values that are not objects return a result for which Exists() is false.
func (e RawEvent) Get(path string) gjson.Result {
	if len(e.raw) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(e.raw, path)
}

func (e RawEvent) Has(path string) bool {
	return e.Get(path).Exists()
}

// String returns the value at path if it is present and is a JSON string.
func (e RawEvent) String(path string) (string, bool) {
	r := e.Get(path)
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

// Object returns the value at path if it is present and is a JSON object.
func (e RawEvent) Object(path string) (gjson.Result, bool) {
	r := e.Get(path)
	if !r.IsObject() {
		return gjson.Result{}, false
	}
	return r, true
}

// Array returns the elements at path if the value is present and is a JSON array.
func (e RawEvent) Array(path string) ([]gjson.Result, bool) {
	r := e.Get(path)
	if !r.IsArray() {
		return nil, false
	}
	return r.Array(), true
}
