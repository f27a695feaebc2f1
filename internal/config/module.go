package config

import "go.uber.org/fx"

// Module exposes configuration loader for fx graphs. It expects Args to be supplied.
var Module = fx.Provide(FromArgs)
