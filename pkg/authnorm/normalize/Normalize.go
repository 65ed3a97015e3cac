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

// Package normalize turns raw login events from the supported upstream sources into events.Result values.
//
// Normalizers are pure functions of a single event. They never fail: an event which is irrelevant, malformed
// or missing a required field produces a result with Valid set to false.
package normalize

import (
	"fmt"
	"slices"

	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
)

// Variant identifies the upstream source a normalizer handles. The set of variants is closed.
type Variant string

const (
	Auth0      Variant = "auth0"
	Bmo        Variant = "bmo"
	Duo        Variant = "duo"
	Google     Variant = "google"
	Okta       Variant = "okta"
	OktaLegacy Variant = "okta_legacy"
)

var variants = []Variant{Auth0, Bmo, Duo, Google, Okta, OktaLegacy}

func Variants() []Variant {
	return slices.Clone(variants)
}

func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !slices.Contains(variants, v) {
		return "", fmt.Errorf("unknown normalizer '%s'", s)
	}
	return v, nil
}

// Normalize applies the normalizer for v to a single event.
func Normalize(v Variant, evt events.RawEvent) events.Result {
	switch v {
	case Auth0:
		return normalizeAuth0(evt)
	case Bmo:
		return normalizeBmo(evt)
	case Duo:
		return normalizeDuo(evt)
	case Google:
		return normalizeGoogle(evt)
	case Okta:
		return normalizeOkta(evt)
	case OktaLegacy:
		return normalizeOktaLegacy(evt)
	default:
		return events.Result{Name: string(v)}
	}
}

// Describe returns the routing metadata for v.
func Describe(v Variant) descriptor.Descriptor {
	switch v {
	case Auth0:
		return auth0Descriptor()
	case Bmo:
		return bmoDescriptor()
	case Duo:
		return duoDescriptor()
	case Google:
		return googleDescriptor()
	case Okta:
		return oktaDescriptor(Okta)
	case OktaLegacy:
		return oktaDescriptor(OktaLegacy)
	default:
		return descriptor.Descriptor{}
	}
}

// Definition pairs a normalizer with its descriptor. Plugins provide definitions to the "normalizers" group.
type Definition struct {
	Variant    Variant
	Descriptor descriptor.Descriptor
}

func Definitions() []Definition {
	ret := make([]Definition, 0, len(variants))
	for _, v := range variants {
		ret = append(ret, Definition{Variant: v, Descriptor: Describe(v)})
	}
	return ret
}
