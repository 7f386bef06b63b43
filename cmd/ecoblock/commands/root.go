package commands

import (
	"github.com/ecoblock/ecoblock/src/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	_config = NewDefaultCLIConfig()
	_viper  = viper.New()
)

//NewRootCmd builds the ecoblock command and its subcommands, with a fresh
//configuration.
func NewRootCmd() *cobra.Command {
	_config = NewDefaultCLIConfig()
	_viper = viper.New()

	cmd := &cobra.Command{
		Use:               "ecoblock",
		Short:             "EcoBlock node",
		TraverseChildren:  true,
		PersistentPreRunE: loadConfig,
	}

	cmd.PersistentFlags().String("datadir", _config.Node.DataDir, "Top-level directory for the key and data")
	cmd.PersistentFlags().String("log", _config.Node.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-file", _config.Node.LogFile, "File receiving a JSON copy of the logs")

	cmd.AddCommand(
		NewKeygenCmd(),
		NewIDCmd(),
		NewResetCmd(),
		NewStatusCmd(),
		NewRunCmd(),
		NewVersionCmd(),
	)

	return cmd
}

func loadConfig(cmd *cobra.Command, args []string) error {
	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.Node.SetDataDir(_config.Node.DataDir)

	_config.Node.Logger().WithFields(logrus.Fields{
		"DataDir":        _config.Node.DataDir,
		"LogLevel":       _config.Node.LogLevel,
		"LogFile":        _config.Node.LogFile,
		"Store":          _config.Node.Store,
		"DatabaseDir":    _config.Node.DatabaseDir,
		"GossipFanout":   _config.Node.GossipFanout,
		"GossipQueue":    _config.Node.GossipQueue,
		"GossipInterval": _config.GossipInterval,
		"NoService":      _config.Node.NoService,
		"ServiceAddr":    _config.Node.ServiceAddr,
		"Moniker":        _config.Node.Moniker,
	}).Debug("Config")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := _viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := _viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/ecoblock.toml (.json, .yaml also work)
	_viper.SetConfigName(config.DefaultConfigFile)
	_viper.AddConfigPath(_config.Node.DataDir)

	// If a config file is found, read it in.
	if err := _viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		return nil
	}

	// second unmarshal to read from config file
	return _viper.Unmarshal(_config)
}
