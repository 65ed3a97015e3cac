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
	"github.com/jackbister/authnorm/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the normalizers over HTTP",
		Long: `Starts an HTTP server with the following endpoints:
  POST /normalize/:plugin   normalize a batch
  POST /route               route a batch to normalizers
  GET  /plugins             list descriptors
  GET  /plugins/:plugin     get one descriptor
  GET  /metrics             Prometheus metrics
  GET  /healthz             health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Web.Address = addr
			}
			c, err := a.container()
			if err != nil {
				return err
			}
			return c.Invoke(func(w *web.Web) error {
				return w.Serve(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "The address to listen on, overrides web.address from the configuration")
	return cmd
}
