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

// Package descriptor contains the routing metadata attached to each normalizer.
// A dispatcher reads descriptors to decide which raw events a normalizer should receive,
// without having to construct or invoke the normalizer itself.
package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Descriptor struct {
	Name    string          `json:"name" yaml:"name" validate:"required"`
	Tags    []TagConstraint `json:"tags,omitempty" yaml:"tags,omitempty" validate:"dive"`
	Queries []QueryFragment `json:"queries,omitempty" yaml:"queries,omitempty" validate:"dive"`
}

// TagConstraint requires the event to carry exactly Value at the dotted Path. All tags of a descriptor must match.
type TagConstraint struct {
	Path  string `json:"path" yaml:"path" validate:"required,fieldpath"`
	Value string `json:"value" yaml:"value" validate:"required"`
}

// QueryFragment requires Fragment to appear somewhere in the text of Field.
// Fragments on the same field are alternatives, any one of them is enough.
type QueryFragment struct {
	Field    string `json:"field" yaml:"field" validate:"required,fieldpath"`
	Fragment string `json:"fragment" yaml:"fragment" validate:"required"`
}

var fieldPathRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

func IsFieldPath(s string) bool {
	return fieldPathRegex.MatchString(s)
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("fieldpath", func(fl validator.FieldLevel) bool {
		return IsFieldPath(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register fieldpath validator: %w", err)
	}
	return v, nil
}

// Validate reports configuration errors in the descriptor. A descriptor which does not validate must not be registered.
func (d *Descriptor) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}
	err = v.Struct(d)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate descriptor: %w", err)
	}
	name := d.Name
	if name == "" {
		name = "(unnamed)"
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Namespace()))
		case "fieldpath":
			msgs = append(msgs, fmt.Sprintf("%s='%v' is not a dotted field path", fe.Namespace(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid descriptor %v: %s", name, strings.Join(msgs, "; "))
}

// QueryGroups returns the fragments grouped by field, in the order each field first appears.
func (d *Descriptor) QueryGroups() []QueryGroup {
	ret := []QueryGroup{}
	idx := map[string]int{}
	for _, q := range d.Queries {
		i, ok := idx[q.Field]
		if !ok {
			i = len(ret)
			idx[q.Field] = i
			ret = append(ret, QueryGroup{Field: q.Field})
		}
		ret[i].Fragments = append(ret[i].Fragments, q.Fragment)
	}
	return ret
}

type QueryGroup struct {
	Field     string
	Fragments []string
}
