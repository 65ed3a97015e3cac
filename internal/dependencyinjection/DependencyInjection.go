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

package dependencyinjection

import (
	"log/slog"

	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/internal/metrics"
	"github.com/jackbister/authnorm/internal/registry"
	"github.com/jackbister/authnorm/internal/runner"
	"github.com/jackbister/authnorm/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
)

func InjectionContextFromConfig(cfg *config.Config, logger *slog.Logger) (*dig.Container, error) {
	c := dig.New()
	err := provideBasics(c, cfg, logger)
	if err != nil {
		return nil, err
	}

	for _, p := range usedPlugins {
		logger.Debug("Loading plugin", slog.String("pluginName", p.Name))
		err = p.Provide(c, logger)
		if err != nil {
			return nil, err
		}
	}

	err = c.Provide(registry.NewRegistry)
	if err != nil {
		return nil, err
	}
	err = provideMetrics(c)
	if err != nil {
		return nil, err
	}
	err = c.Provide(runner.NewBatchRunner)
	if err != nil {
		return nil, err
	}
	err = c.Provide(web.NewWeb)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func provideBasics(c *dig.Container, cfg *config.Config, logger *slog.Logger) error {
	err := c.Provide(func() *slog.Logger {
		return logger
	})
	if err != nil {
		return err
	}
	err = c.Provide(func() *config.Config {
		return cfg
	})
	if err != nil {
		return err
	}
	return nil
}

func provideMetrics(c *dig.Container) error {
	err := c.Provide(prometheus.NewRegistry)
	if err != nil {
		return err
	}
	err = c.Provide(func(reg *prometheus.Registry) *metrics.Metrics {
		return metrics.NewMetrics(reg)
	})
	if err != nil {
		return err
	}
	return nil
}
