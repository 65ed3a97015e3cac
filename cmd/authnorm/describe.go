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
	"fmt"
	"log/slog"
	"os"

	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/spf13/cobra"
)

type describeResult struct {
	File       string                 `json:"file"`
	Descriptor *descriptor.Descriptor `json:"descriptor,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file>...",
		Short: "Read descriptors from plugin script annotations",
		Long: `Reads the "# @@ name", "# @T path value" and "# @Q field: fragment" header comments of each file
and prints the resulting descriptors. Files whose descriptors are invalid are reported and make the
command fail after every file has been read.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]describeResult, len(args))
			failed := 0
			for i, file := range args {
				results[i].File = file
				d, err := describeFile(file)
				if err != nil {
					a.logger.Error("Failed to read descriptor", slog.String("file", file), slog.Any("error", err))
					results[i].Error = err.Error()
					failed++
					continue
				}
				results[i].Descriptor = &d
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			err := enc.Encode(results)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%v of %v files have invalid descriptors", failed, len(args))
			}
			return nil
		},
	}
}

func describeFile(file string) (descriptor.Descriptor, error) {
	f, err := os.Open(file)
	if err != nil {
		return descriptor.Descriptor{}, err
	}
	defer f.Close()
	d, err := descriptor.ParseAnnotations(f)
	if err != nil {
		return descriptor.Descriptor{}, err
	}
	err = d.Validate()
	if err != nil {
		return descriptor.Descriptor{}, err
	}
	return d, nil
}
