package commands

import (
	"time"

	"github.com/ecoblock/ecoblock/src/config"
)

// DefaultGossipInterval is the default time between two gossip rounds.
const DefaultGossipInterval = 1000 * time.Millisecond

//CLIConfig contains configuration for the commands
type CLIConfig struct {
	Node           config.Config `mapstructure:",squash"`
	GossipInterval time.Duration `mapstructure:"gossip-interval"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Node:           *config.NewDefaultConfig(),
		GossipInterval: DefaultGossipInterval,
	}
}
