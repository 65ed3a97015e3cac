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
	"io"

	"github.com/jackbister/authnorm/internal/registry"
	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPluginsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Print the descriptors of every registered normalizer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container()
			if err != nil {
				return err
			}
			return c.Invoke(func(r *registry.Registry) error {
				return writeDescriptors(cmd.OutOrStdout(), format, r.Descriptors())
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml or annotations")
	return cmd
}

func writeDescriptors(w io.Writer, format string, descriptors []descriptor.Descriptor) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptors)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(descriptors)
		if err != nil {
			return err
		}
		return enc.Close()
	case "annotations":
		for i, d := range descriptors {
			if i > 0 {
				fmt.Fprintln(w)
			}
			_, err := io.WriteString(w, d.Annotations())
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format '%s', expected json, yaml or annotations", format)
	}
}
