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
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	annotationName  = "@@"
	annotationTag   = "@T"
	annotationQuery = "@Q"
)

// ParseAnnotations reads a descriptor from the header comments of a plugin script:
//
//	# @@ auth0
//	# @T _type event
//	# @Q tags: auth0
//
// Lines which are not annotations are skipped. The returned descriptor is not validated.
func ParseAnnotations(r io.Reader) (Descriptor, error) {
	var d Descriptor
	scnr := bufio.NewScanner(r)
	lineNo := 0
	for scnr.Scan() {
		lineNo++
		line := strings.TrimSpace(scnr.Text())
		if !strings.HasPrefix(line, "#") {
			continue
		}
		args := strings.Fields(strings.TrimPrefix(line, "#"))
		if len(args) < 2 {
			continue
		}
		switch args[0] {
		case annotationName:
			d.Name = args[1]
		case annotationTag:
			if len(args) < 3 {
				return d, fmt.Errorf("line %v: tag annotation needs a path and a value", lineNo)
			}
			d.Tags = append(d.Tags, TagConstraint{Path: args[1], Value: args[2]})
		case annotationQuery:
			// Cut the raw text so whitespace inside the fragment is kept as written
			rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			rest = strings.TrimPrefix(rest, annotationQuery)
			field, frag, ok := strings.Cut(rest, ":")
			if !ok {
				return d, fmt.Errorf("line %v: query annotation must look like '<field>: <fragment>'", lineNo)
			}
			d.Queries = append(d.Queries, QueryFragment{
				Field:    strings.TrimSpace(field),
				Fragment: strings.TrimSpace(frag),
			})
		}
	}
	if err := scnr.Err(); err != nil {
		return d, fmt.Errorf("failed to read annotations: %w", err)
	}
	return d, nil
}

// Annotations renders the descriptor in the header comment format read by ParseAnnotations.
func (d *Descriptor) Annotations() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s %s\n", annotationName, d.Name)
	for _, t := range d.Tags {
		fmt.Fprintf(&sb, "# %s %s %s\n", annotationTag, t.Path, t.Value)
	}
	for _, q := range d.Queries {
		fmt.Fprintf(&sb, "# %s %s: %s\n", annotationQuery, q.Field, q.Fragment)
	}
	return sb.String()
}
