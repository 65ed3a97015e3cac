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
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Batch is the input document handed to a normalizer: {"events": [...]}
type Batch struct {
	Events []RawEvent `json:"events"`
}

// ResultBatch is the output document: {"results": [...]}, index aligned with the Batch it was produced from.
type ResultBatch struct {
	Results []Result `json:"results"`
}

var (
	ErrMissingEvents = errors.New("input document has no events list")
	ErrTrailingData  = errors.New("input has data after the events document")
)

type jsonBatch struct {
	Events *[]RawEvent `json:"events"`
}

// DecodeBatch reads a single Batch document. Any error here is a boundary defect and applies to the whole batch.
func DecodeBatch(r io.Reader) (Batch, error) {
	var jb jsonBatch
	decoder := json.NewDecoder(r)
	err := decoder.Decode(&jb)
	if err != nil {
		return Batch{}, fmt.Errorf("error decoding batch JSON: %w", err)
	}
	// The input is exactly one document, anything after it makes the whole input unparsable
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Batch{}, ErrTrailingData
	}
	if jb.Events == nil {
		return Batch{}, ErrMissingEvents
	}
	return Batch{Events: *jb.Events}, nil
}

func EncodeResults(w io.Writer, rb ResultBatch) error {
	if rb.Results == nil {
		rb.Results = []Result{}
	}
	err := json.NewEncoder(w).Encode(rb)
	if err != nil {
		return fmt.Errorf("error encoding results JSON: %w", err)
	}
	return nil
}
