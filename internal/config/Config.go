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

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Workers is the number of events which are normalized concurrently within a batch.
	Workers int `validate:"min=1,max=1024"`

	LogLevel string `validate:"oneof=debug info warn error"`

	// VerifyResults makes the runner check every valid result the way consumers do, downgrading results
	// with an unparseable address or timestamp to invalid.
	VerifyResults bool

	Web *WebConfig `validate:"required"`

	// Plugins holds per-normalizer settings keyed by normalizer name. Normalizers missing from the map are enabled.
	Plugins map[string]PluginConfig
}

type WebConfig struct {
	Address string `validate:"required"`
}

type PluginConfig struct {
	Enabled bool
}

func Default() *Config {
	return &Config{
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
		Web: &WebConfig{
			Address: ":8080",
		},
		Plugins: map[string]PluginConfig{},
	}
}

func (c *Config) PluginEnabled(name string) bool {
	pc, ok := c.Plugins[name]
	return !ok || pc.Enabled
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Namespace()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got '%v'", fe.Namespace(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s, got '%v'", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
