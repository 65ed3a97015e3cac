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
	"fmt"
	"net/netip"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Result is the canonical identity record produced by normalizing a single RawEvent.
// Principal and SourceIPV4 should only be trusted when Valid is true.
type Result struct {
	Valid      bool            `json:"valid"`
	Name       string          `json:"name"`
	Timestamp  json.RawMessage `json:"timestamp,omitempty"`
	Principal  string          `json:"principal,omitempty"`
	SourceIPV4 string          `json:"source_ipv4,omitempty"`
}

// internalPrefixes are the source addresses which cannot be located, consumers discard logins from them.
var internalPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/32"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
}

func IsInternalAddress(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range internalPrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Check verifies a result the same way the consumers of normalized results do.
// Invalid results only need a name.
func (r *Result) Check() error {
	if r.Name == "" {
		return fmt.Errorf("result has no name")
	}
	if !r.Valid {
		return nil
	}
	if r.Principal == "" {
		return fmt.Errorf("result from %v has no principal value", r.Name)
	}
	if r.SourceIPV4 != "" {
		addr, err := netip.ParseAddr(r.SourceIPV4)
		if err != nil {
			return fmt.Errorf("result from %v has invalid source_ipv4 value %q: %w", r.Name, r.SourceIPV4, err)
		}
		if IsInternalAddress(addr) {
			return fmt.Errorf("result from %v has internal source_ipv4 value %q", r.Name, r.SourceIPV4)
		}
	}
	if len(r.Timestamp) > 0 {
		if _, err := r.Time(); err != nil {
			return fmt.Errorf("result from %v has invalid timestamp: %w", r.Name, err)
		}
	}
	return nil
}

// Time interprets the timestamp copied from the source event. Strings are parsed leniently since every upstream
// source formats them differently, numbers are treated as seconds since the epoch.
func (r *Result) Time() (time.Time, error) {
	if len(r.Timestamp) == 0 {
		return time.Time{}, fmt.Errorf("result has no timestamp")
	}
	var s string
	if err := json.Unmarshal(r.Timestamp, &s); err == nil {
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp value='%s': %w", s, err)
		}
		return t, nil
	}
	f, err := strconv.ParseFloat(string(r.Timestamp), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp value='%s' as a number: %w", string(r.Timestamp), err)
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC(), nil
}
