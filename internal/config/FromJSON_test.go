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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON(strings.NewReader(`{
		"workers": 8,
		"logLevel": "DEBUG",
		"verifyResults": true,
		"web": {"address": ":9090"},
		"plugins": {"okta_legacy": {"enabled": false}, "okta": {}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.VerifyResults)
	assert.Equal(t, ":9090", cfg.Web.Address)
	assert.False(t, cfg.PluginEnabled("okta_legacy"))
	assert.True(t, cfg.PluginEnabled("okta"))
	assert.True(t, cfg.PluginEnabled("auth0"))
}

func TestFromJSONDefaults(t *testing.T) {
	cfg, err := FromJSON(strings.NewReader(`{}`))
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.Workers, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.VerifyResults)
	assert.Equal(t, ":8080", cfg.Web.Address)
}

func TestFromJSONValidation(t *testing.T) {
	_, err := FromJSON(strings.NewReader(`{"workers": 0}`))
	assert.ErrorContains(t, err, "Workers")

	_, err = FromJSON(strings.NewReader(`{"logLevel": "verbose"}`))
	assert.ErrorContains(t, err, "LogLevel must be one of")

	_, err = FromJSON(strings.NewReader(`{"unknownSetting": true}`))
	assert.Error(t, err)

	_, err = FromJSON(strings.NewReader(`{"workers": "many"}`))
	assert.Error(t, err)
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML(strings.NewReader("workers: 2\nlogLevel: warn\nplugins:\n  bmo:\n    enabled: false\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.PluginEnabled("bmo"))

	cfg, err = FromYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	cfg, found, err := FromFile(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), cfg)

	yamlPath := filepath.Join(dir, "authnorm.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("workers: 3\n"), 0o600))
	cfg, found, err = FromFile(yamlPath)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, cfg.Workers)

	jsonPath := filepath.Join(dir, "authnorm.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"workers": 4}`), 0o600))
	cfg, found, err = FromFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, cfg.Workers)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{`), 0o600))
	_, found, err = FromFile(badPath)
	assert.Error(t, err)
	assert.True(t, found)
}
