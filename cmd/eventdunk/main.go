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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"
)

func main() {
	plugin := flag.String("plugin", "", "The normalizer to generate events for. Events for every normalizer are mixed if empty.")
	count := flag.Int("count", 100, "The number of events to generate")
	invalidPercent := flag.Int("invalidPercent", 20, "The share of events, in percent, which should not be successful logins")
	seed := flag.Int64("seed", 0, "The random seed. The current time is used if 0.")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gofakeit.Seed(*seed)

	variants := normalize.Variants()
	if *plugin != "" {
		v, err := normalize.ParseVariant(*plugin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
			return
		}
		variants = []normalize.Variant{v}
	}

	evts := make([]map[string]any, *count)
	for i := range evts {
		v := variants[gofakeit.Number(0, len(variants)-1)]
		valid := gofakeit.Number(0, 99) >= *invalidPercent
		evts[i] = fakeEvent(v, valid)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	err := enc.Encode(map[string]any{"events": evts})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Got error when writing events:", err)
		os.Exit(1)
	}
}
