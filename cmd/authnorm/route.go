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

	"github.com/jackbister/authnorm/internal/registry"
	"github.com/jackbister/authnorm/internal/web"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/spf13/cobra"
)

func newRouteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route",
		Short: "Print which normalizers each event of a batch would be routed to",
		Long: `Reads one {"events": [...]} document from stdin and evaluates every registered descriptor against
each event. The output holds one list of normalizer names per event.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container()
			if err != nil {
				return err
			}
			return c.Invoke(func(r *registry.Registry) error {
				batch, err := events.DecodeBatch(cmd.InOrStdin())
				if err != nil {
					return err
				}
				res := web.RouteResponse{Routes: r.RouteBatch(batch)}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			})
		},
	}
}
