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

package registry

import (
	"log/slog"
	"testing"

	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryRegistersEnabledDefinitions(t *testing.T) {
	cfg := config.Default()
	cfg.Plugins["okta_legacy"] = config.PluginConfig{Enabled: false}
	r := NewRegistry(RegistryParams{
		Cfg:         cfg,
		Definitions: normalize.Definitions(),
		Logger:      slog.Default(),
	})
	assert.Equal(t, []string{"auth0", "bmo", "duo", "google", "okta"}, r.Names())
	_, ok := r.Lookup("okta_legacy")
	assert.False(t, ok)
	def, ok := r.Lookup("duo")
	require.True(t, ok)
	assert.Equal(t, normalize.Duo, def.Variant)
}

func TestBrokenDescriptorOnlyRejectsThatPlugin(t *testing.T) {
	broken := normalize.Definition{Variant: normalize.Bmo, Descriptor: descriptor.Descriptor{
		Name: "bmo",
		Tags: []descriptor.TagConstraint{{Path: "details..program", Value: "apache"}},
	}}
	defs := []normalize.Definition{
		broken,
		{Variant: normalize.Duo, Descriptor: normalize.Describe(normalize.Duo)},
		{Variant: normalize.Google, Descriptor: descriptor.Descriptor{}},
	}
	r := NewRegistry(RegistryParams{Cfg: config.Default(), Definitions: defs, Logger: slog.Default()})
	assert.Equal(t, []string{"duo"}, r.Names())
}

func TestRegisterErrors(t *testing.T) {
	r := New(slog.Default())
	require.NoError(t, r.Register(normalize.Definition{Variant: normalize.Auth0, Descriptor: normalize.Describe(normalize.Auth0)}))

	err := r.Register(normalize.Definition{Variant: normalize.Auth0, Descriptor: normalize.Describe(normalize.Auth0)})
	assert.ErrorContains(t, err, "already registered")

	err = r.Register(normalize.Definition{Variant: normalize.Duo, Descriptor: normalize.Describe(normalize.Auth0)})
	assert.ErrorContains(t, err, "does not match")

	err = r.Register(normalize.Definition{Variant: "onelogin", Descriptor: descriptor.Descriptor{Name: "onelogin"}})
	assert.Error(t, err)

	err = r.Register(normalize.Definition{Variant: normalize.Duo})
	assert.ErrorContains(t, err, "Name is required")
}

func TestRoute(t *testing.T) {
	r := NewRegistry(RegistryParams{Cfg: config.Default(), Definitions: normalize.Definitions(), Logger: slog.Default()})

	okta := events.NewRawEvent([]byte(`{"_type":"okta","category":"okta","details":{}}`))
	assert.Equal(t, []string{"okta", "okta_legacy"}, r.Route(okta))

	syslog := events.NewRawEvent([]byte(`{"_type":"event","category":"syslog","details":{"program":"apache"},"summary":"[audit] successful login of alice from 10.0.0.5"}`))
	assert.Equal(t, []string{"bmo"}, r.Route(syslog))

	auth0 := events.NewRawEvent([]byte(`{"_type":"event","tags":["auth0"],"details":{}}`))
	assert.Equal(t, []string{"auth0"}, r.Route(auth0))

	nothing := events.NewRawEvent([]byte(`"just text"`))
	assert.Empty(t, r.Route(nothing))

	assert.Len(t, r.Descriptors(), len(normalize.Variants()))
}

func TestRouteBatch(t *testing.T) {
	r := NewRegistry(RegistryParams{Cfg: config.Default(), Definitions: normalize.Definitions(), Logger: slog.Default()})
	batch := events.Batch{Events: []events.RawEvent{
		events.NewRawEvent([]byte(`{"_type":"google","category":"google"}`)),
		events.NewRawEvent([]byte(`{}`)),
	}}
	assert.Equal(t, [][]string{{"google"}, {}}, r.RouteBatch(batch))
	assert.Empty(t, r.RouteBatch(events.Batch{}))
}
