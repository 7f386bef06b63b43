package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/ecoblock/ecoblock/src/topology"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing the node's
	// private key
	DefaultKeyfile = keystore.KeyfileName

	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"

	// DefaultConfigFile is the name, without extension, of the optional
	// configuration file in the data directory.
	DefaultConfigFile = "ecoblock"
)

// Default configuration values.
const (
	DefaultLogLevel     = "debug"
	DefaultServiceAddr  = "127.0.0.1:8000"
	DefaultStore        = false
	DefaultGossipFanout = 3
	DefaultGossipQueue  = 1024
	DefaultMoniker      = ""
)

// Config contains all the configuration properties of an EcoBlock node.
type Config struct {
	// DataDir is the top-level directory containing the node's key and data
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, receives a JSON copy of every log entry.
	LogFile string `mapstructure:"log-file"`

	// Store activates persistant storage of the tangle.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// GossipFanout is the number of peers a block is pushed to in a gossip
	// round.
	GossipFanout int `mapstructure:"gossip-fanout"`

	// GossipQueue bounds the number of blocks waiting to be gossiped.
	GossipQueue int `mapstructure:"gossip-queue"`

	// NoService disables the HTTP API service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the optional HTTP service.
	ServiceAddr string `mapstructure:"service-listen"`

	// Moniker defines the friendly name of this node
	Moniker string `mapstructure:"moniker"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:      DefaultDataDir(),
		LogLevel:     DefaultLogLevel,
		Store:        DefaultStore,
		DatabaseDir:  DefaultDatabaseDir(),
		GossipFanout: DefaultGossipFanout,
		GossipQueue:  DefaultGossipQueue,
		ServiceAddr:  DefaultServiceAddr,
		Moniker:      DefaultMoniker,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level directory, and updates the database directory
// if it is currently set to the default value. If the database directory is
// not currently the default, it means the user has explicitely set it to
// something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Keyfile returns the full path of the file containing the private key.
func (c *Config) Keyfile() string {
	return keystore.KeypairPath(c.DataDir)
}

// TopologyFile returns the full path of the file containing the peer links.
func (c *Config) TopologyFile() string {
	return filepath.Join(c.DataDir, topology.JSONGraphFile)
}

// Logger returns a formatted logrus Entry, with prefix set to "ecoblock". When
// LogFile is set, every entry is also written to that file as JSON.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, level := range logrus.AllLevels {
				pathMap[level] = c.LogFile
			}

			c.logger.Hooks.Add(lfshook.NewHook(
				pathMap,
				&logrus.JSONFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "ecoblock")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level EcoBlock
// data based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".EcoBlock")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "EcoBlock")
		} else {
			return filepath.Join(home, ".ecoblock")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
