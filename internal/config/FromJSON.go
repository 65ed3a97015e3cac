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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type jsonWebConfig struct {
	Address string `json:"address" yaml:"address"`
}

type jsonPluginConfig struct {
	Enabled *bool `json:"enabled" yaml:"enabled"`
}

type jsonConfig struct {
	Workers       *int                        `json:"workers" yaml:"workers"`
	LogLevel      string                      `json:"logLevel" yaml:"logLevel"`
	VerifyResults *bool                       `json:"verifyResults" yaml:"verifyResults"`
	Web           *jsonWebConfig              `json:"web" yaml:"web"`
	Plugins       map[string]jsonPluginConfig `json:"plugins" yaml:"plugins"`
}

func FromJSON(r io.Reader) (*Config, error) {
	var cfg jsonConfig
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding config JSON: %w", err)
	}
	return fromJsonConfig(&cfg)
}

func FromYAML(r io.Reader) (*Config, error) {
	var cfg jsonConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding config YAML: %w", err)
	}
	return fromJsonConfig(&cfg)
}

// FromFile reads the configuration at path, choosing the format from the file extension.
// If the file does not exist the default configuration is returned and found is false.
func FromFile(path string) (cfg *Config, found bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("error opening config file '%v': %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = FromYAML(f)
	default:
		cfg, err = FromJSON(f)
	}
	if err != nil {
		return nil, true, fmt.Errorf("error reading config file '%v': %w", path, err)
	}
	return cfg, true, nil
}

func fromJsonConfig(cfg *jsonConfig) (*Config, error) {
	ret := Default()
	if cfg.Workers != nil {
		ret.Workers = *cfg.Workers
	}
	if cfg.LogLevel != "" {
		ret.LogLevel = strings.ToLower(cfg.LogLevel)
	}
	if cfg.VerifyResults != nil {
		ret.VerifyResults = *cfg.VerifyResults
	}
	if cfg.Web != nil && cfg.Web.Address != "" {
		ret.Web.Address = cfg.Web.Address
	}
	for name, pc := range cfg.Plugins {
		enabled := true
		if pc.Enabled != nil {
			enabled = *pc.Enabled
		}
		ret.Plugins[name] = PluginConfig{Enabled: enabled}
	}
	err := ret.Validate()
	if err != nil {
		return nil, err
	}
	return ret, nil
}
