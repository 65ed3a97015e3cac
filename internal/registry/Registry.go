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
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/pkg/authnorm/descriptor"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"

	"go.uber.org/dig"
)

// Registry holds the normalizers available in this process together with their descriptors.
type Registry struct {
	defs map[string]normalize.Definition

	logger *slog.Logger
}

type RegistryParams struct {
	dig.In

	Cfg         *config.Config
	Definitions []normalize.Definition `group:"normalizers"`
	Logger      *slog.Logger
}

func New(logger *slog.Logger) *Registry {
	return &Registry{
		defs:   map[string]normalize.Definition{},
		logger: logger,
	}
}

// NewRegistry registers every provided definition which is enabled in the configuration.
// A definition with a broken descriptor is logged and skipped, the remaining definitions are still registered.
func NewRegistry(p RegistryParams) *Registry {
	r := New(p.Logger)
	for _, def := range p.Definitions {
		if !p.Cfg.PluginEnabled(def.Descriptor.Name) {
			p.Logger.Info("Normalizer is disabled by configuration", slog.String("pluginName", def.Descriptor.Name))
			continue
		}
		err := r.Register(def)
		if err != nil {
			p.Logger.Error("Failed to register normalizer", slog.String("variant", string(def.Variant)), slog.Any("error", err))
		}
	}
	return r
}

func (r *Registry) Register(def normalize.Definition) error {
	err := def.Descriptor.Validate()
	if err != nil {
		return err
	}
	if def.Descriptor.Name != string(def.Variant) {
		return fmt.Errorf("descriptor name %v does not match normalizer %v", def.Descriptor.Name, def.Variant)
	}
	if _, err := normalize.ParseVariant(string(def.Variant)); err != nil {
		return err
	}
	if _, ok := r.defs[def.Descriptor.Name]; ok {
		return fmt.Errorf("normalizer %v is already registered", def.Descriptor.Name)
	}
	r.defs[def.Descriptor.Name] = def
	r.logger.Debug("Registered normalizer",
		slog.String("pluginName", def.Descriptor.Name),
		slog.Int("tags", len(def.Descriptor.Tags)),
		slog.Int("queries", len(def.Descriptor.Queries)))
	return nil
}

func (r *Registry) Lookup(name string) (normalize.Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.defs))
	for name := range r.defs {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Descriptors returns the descriptors of every registered normalizer, sorted by name.
func (r *Registry) Descriptors() []descriptor.Descriptor {
	names := r.Names()
	ret := make([]descriptor.Descriptor, len(names))
	for i, name := range names {
		ret[i] = r.defs[name].Descriptor
	}
	return ret
}

// Route returns the names of the normalizers whose descriptors match the event.
func (r *Registry) Route(evt events.RawEvent) []string {
	ret := []string{}
	for _, name := range r.Names() {
		d := r.defs[name].Descriptor
		if d.Matches(evt) {
			ret = append(ret, name)
		}
	}
	return ret
}

// RouteBatch routes every event of a batch. The result has one entry per event, in order.
func (r *Registry) RouteBatch(batch events.Batch) [][]string {
	ret := make([][]string, len(batch.Events))
	for i, evt := range batch.Events {
		ret[i] = r.Route(evt)
	}
	return ret
}
