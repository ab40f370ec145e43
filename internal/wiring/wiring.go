// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/retortlabs/retort/internal/adapters/config"
	_ "github.com/retortlabs/retort/internal/adapters/fs"
	_ "github.com/retortlabs/retort/internal/adapters/logger"
	_ "github.com/retortlabs/retort/internal/adapters/python"
	_ "github.com/retortlabs/retort/internal/adapters/shell"
	_ "github.com/retortlabs/retort/internal/adapters/state"
	_ "github.com/retortlabs/retort/internal/adapters/telemetry"
	_ "github.com/retortlabs/retort/internal/adapters/venv"
	// Register app and engine nodes.
	_ "github.com/retortlabs/retort/internal/app"
	_ "github.com/retortlabs/retort/internal/engine/runner"
)
