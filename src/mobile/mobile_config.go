package mobile

import (
	"github.com/ecoblock/ecoblock/src/config"
)

// MobileConfig holds the options a host application can set before the first
// call into the package.
type MobileConfig struct {
	LogLevel    string //debug, info, warn or error
	LogFile     string //optional JSON log file
	Store       bool   //keep the tangle in a badger database under the node directory
	GossipQueue int    //max number of blocks waiting to be gossiped
}

// NewMobileConfig ...
func NewMobileConfig(logLevel string,
	logFile string,
	store bool,
	gossipQueue int) *MobileConfig {

	return &MobileConfig{
		LogLevel:    logLevel,
		LogFile:     logFile,
		Store:       store,
		GossipQueue: gossipQueue,
	}
}

// DefaultMobileConfig ...
func DefaultMobileConfig() *MobileConfig {
	return &MobileConfig{
		LogLevel:    "info",
		LogFile:     "",
		Store:       false,
		GossipQueue: config.DefaultGossipQueue,
	}
}

func (c *MobileConfig) toConfig() *config.Config {
	conf := config.NewDefaultConfig()

	conf.LogLevel = c.LogLevel
	conf.LogFile = c.LogFile
	conf.Store = c.Store
	conf.GossipQueue = c.GossipQueue

	return conf
}
