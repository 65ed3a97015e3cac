package authnorm

import (
	"log/slog"

	"go.uber.org/dig"
)

type ProviderFunc func(c *dig.Container, logger *slog.Logger) error

// Plugin is a unit of functionality that is loaded into the dependency injection container at startup.
// A plugin contributes normalizers by providing normalize.Definition values in the "normalizers" group.
type Plugin struct {
	Name    string
	Provide ProviderFunc
}
