// Package config defines the configuration for an EcoBlock node.
//
// Regardless of how a node is started, directly from Go code or as a standalone
// process from the command line, it uses the Config object defined in this
// package to store and forward configuration options. On top of these
// configuration options, a node relies on a data directory, defined by
// Config.DataDir, where it keeps a few additional files:
//
//  priv_key // a plain text file containing the raw private key (cf. ecoblock keygen).
//  topology.json // (optional) a JSON file containing the known peer links.
//  badger_db // (optional) the database directory when Store is set.
//  ecoblock.toml // (optional) configuration values read by the CLI.
package config
