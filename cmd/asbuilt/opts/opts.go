// Package opts carries the dependencies shared by all asbuilt subcommands.
package opts

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/pkg/config"
)

// 🔧 RootOpts holds the persistent flag values resolved by the root command
type RootOpts struct {
	ConfigFile string // Path to the config file
	Debug      bool   // Debug logging enabled
	LogFile    string // Optional JSON log file
	Version    string // Tool version, stamped into reports
}

// 🎯 LoadConfig loads and validates the configured file
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
