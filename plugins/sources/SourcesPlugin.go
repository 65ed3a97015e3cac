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

package sources

import (
	"log/slog"

	"github.com/jackbister/authnorm/pkg/authnorm"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"
	"go.uber.org/dig"
)

type definitionsOut struct {
	dig.Out

	Definitions []normalize.Definition `group:"normalizers,flatten"`
}

// Plugin provides the normalizers for every supported upstream source.
var Plugin = authnorm.Plugin{
	Name: "@authnorm/sources",
	Provide: func(c *dig.Container, logger *slog.Logger) error {
		return c.Provide(func() definitionsOut {
			defs := normalize.Definitions()
			logger.Debug("Providing normalizers", slog.Int("count", len(defs)))
			return definitionsOut{Definitions: defs}
		})
	},
}
