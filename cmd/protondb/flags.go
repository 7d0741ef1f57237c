package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/adfharrison1/protondb/pkg/config"
)

var errHelp = errors.New("help requested")

// loadConfig parses args, loads the config file they point at and applies
// the flags that were set on top of it
func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("protondb", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", config.DefaultFileName, "Configuration file (written with defaults if missing)")
	host := fs.String("host", "", "Listen host (overrides server.host)")
	port := fs.IntP("port", "p", 0, "Listen port (overrides server.port)")
	dataDir := fs.StringP("data-dir", "d", "", "Storage root directory (overrides storage.root)")
	debug := fs.Bool("debug", false, "Enable debug logging (overrides server.debug)")
	showHelp := fs.BoolP("help", "h", false, "Show help message")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: protondb [options]

Description:
  ProtonDB is a file-backed document database served over HTTP.
  Databases are directories, collections are JSON files.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  protondb                              Start with protondb.yaml (created if missing)
  protondb --port 8080 --debug          Custom port with debug logging
  protondb --data-dir /var/lib/protondb Custom storage root

`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, err
	}
	if *showHelp {
		fs.Usage()
		return nil, errHelp
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("host") {
		cfg.Server.Host = *host
	}
	if fs.Changed("port") {
		cfg.Server.Port = *port
	}
	if fs.Changed("data-dir") {
		cfg.Storage.Root = *dataDir
	}
	if fs.Changed("debug") {
		cfg.Server.Debug = *debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
