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
	"log/slog"

	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/internal/dependencyinjection"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
)

type app struct {
	cfgFile string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "authnorm",
		Short: "authnorm - login event normalizers",
		Long: `authnorm turns raw login events from identity providers, SSO systems and application logs
into canonical identity records: who authenticated, from which address, and when.

Each normalizer handles one upstream source and carries a descriptor which tells a dispatcher
which events the normalizer should receive.

Commands:
  normalize   Normalize a batch read from stdin
  plugins     Print the descriptors of every registered normalizer
  route       Print which normalizers each event of a batch would be routed to
  describe    Read descriptors from plugin script annotations
  serve       Serve the normalizers over HTTP
  version     Print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "authnorm.json", "The configuration file (JSON, or YAML when the name ends with .yaml/.yml). Defaults are used if the file does not exist.")

	rootCmd.AddCommand(
		newNormalizeCmd(a),
		newPluginsCmd(a),
		newRouteCmd(a),
		newDescribeCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, found, err := config.FromFile(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	// stdout carries the results, so logs go to stderr
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if found {
		a.logger.Debug("Using configuration from file", slog.String("configFile", a.cfgFile))
	} else {
		a.logger.Debug("Could not find config file, will use default configuration", slog.String("configFile", a.cfgFile))
	}
	return nil
}

func (a *app) container() (*dig.Container, error) {
	c, err := dependencyinjection.InjectionContextFromConfig(a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create injection context: %w", err)
	}
	return c, nil
}
