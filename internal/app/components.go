package app

import (
	"github.com/retortlabs/retort/internal/core/ports"
	"github.com/retortlabs/retort/internal/engine/runner"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Runner    *runner.Runner
	Telemetry ports.Telemetry
}
