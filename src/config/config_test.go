package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetDataDir(t *testing.T) {
	conf := NewDefaultConfig()

	conf.SetDataDir("/tmp/ecoblock-node")

	if conf.DatabaseDir != filepath.Join("/tmp/ecoblock-node", DefaultBadgerFile) {
		t.Fatalf("DatabaseDir should follow DataDir, got %s", conf.DatabaseDir)
	}
	if conf.Keyfile() != filepath.Join("/tmp/ecoblock-node", DefaultKeyfile) {
		t.Fatalf("unexpected Keyfile %s", conf.Keyfile())
	}
	if conf.TopologyFile() != filepath.Join("/tmp/ecoblock-node", "topology.json") {
		t.Fatalf("unexpected TopologyFile %s", conf.TopologyFile())
	}

	conf.DatabaseDir = "/var/db"
	conf.SetDataDir("/tmp/other")
	if conf.DatabaseDir != "/var/db" {
		t.Fatalf("explicit DatabaseDir should be kept, got %s", conf.DatabaseDir)
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"unknown": logrus.DebugLevel,
	}

	for s, l := range cases {
		if LogLevel(s) != l {
			t.Fatalf("LogLevel(%s) should be %v, not %v", s, l, LogLevel(s))
		}
	}
}

func TestLogFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ecoblock-config")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	conf := NewDefaultConfig()
	conf.LogLevel = "info"
	conf.LogFile = filepath.Join(dir, "ecoblock.log")

	logger := conf.Logger()
	logger.Logger.Out = ioutil.Discard
	logger.WithField("block", "0XAB").Info("hello")

	data, err := ioutil.ReadFile(conf.LogFile)
	if err != nil {
		t.Fatal(err)
	}

	line := strings.TrimSpace(string(data))

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log file should contain JSON entries: %v (%s)", err, line)
	}

	if entry["msg"] != "hello" || entry["block"] != "0XAB" || entry["prefix"] != "ecoblock" {
		t.Fatalf("unexpected log entry %v", entry)
	}
}
