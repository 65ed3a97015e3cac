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
	"fmt"

	"github.com/jackbister/authnorm/internal/registry"
	"github.com/jackbister/authnorm/internal/runner"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/spf13/cobra"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var plugin string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a batch read from stdin",
		Long: `Reads one {"events": [...]} document from stdin and writes one {"results": [...]} document to stdout,
with one result per event in the same order. Events which are not successful logins produce results with
"valid": false; only an unreadable input document is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container()
			if err != nil {
				return err
			}
			return c.Invoke(func(r *registry.Registry, br *runner.BatchRunner) error {
				def, ok := r.Lookup(plugin)
				if !ok {
					return fmt.Errorf("no normalizer named '%s' is registered", plugin)
				}
				batch, err := events.DecodeBatch(cmd.InOrStdin())
				if err != nil {
					return err
				}
				rb, err := br.Run(cmd.Context(), def.Variant, batch)
				if err != nil {
					return err
				}
				return events.EncodeResults(cmd.OutOrStdout(), rb)
			})
		},
	}
	cmd.Flags().StringVarP(&plugin, "plugin", "p", "", "The normalizer to apply")
	cmd.MarkFlagRequired("plugin")
	return cmd
}
