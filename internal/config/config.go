// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config parses fixcat's command-line flags and optional .env
// overrides, the way the ambient stack of this module's teacher wires its
// own CLI.
package config

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds fixcat's resolved runtime settings.
type Config struct {
	Version     string
	LogLevel    string
	LogDateTime bool
	Admin       bool
	Mix         bool
	Orders      bool
	Fields      string
	MetricsAddr string
}

// FieldSpecs splits Fields on commas into the column list ParseColumns
// expects, trimming whitespace around each entry. An unset Fields yields
// nil, which ParseColumns resolves to its default column set.
func (c *Config) FieldSpecs() []string {
	if strings.TrimSpace(c.Fields) == "" {
		return nil
	}
	raw := strings.Split(c.Fields, ",")
	specs := make([]string, 0, len(raw))
	for _, r := range raw {
		specs = append(specs, strings.TrimSpace(r))
	}
	return specs
}

// Parse reads ./.env (if present) then the command line, command-line flags
// taking precedence over anything .env sets as an environment default.
func Parse(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	fs := flag.NewFlagSet("fixcat", flag.ContinueOnError)
	cfg := &Config{}

	fs.StringVar(&cfg.Version, "version", "FIX.4.4", "Protocol version dictionary to decode with: `FIX.4.2, FIX.4.4, FIX.5.0SP2`")
	fs.StringVar(&cfg.LogLevel, "log-level", envOr("FIXCAT_LOG_LEVEL", "warn"), "Sets the logging level: `[debug, info, warn, err]`")
	fs.BoolVar(&cfg.LogDateTime, "logdate", false, "Add date and time to log messages")
	fs.BoolVar(&cfg.Admin, "admin", false, "Include administrative messages in the output")
	fs.BoolVar(&cfg.Mix, "mix", false, "Echo input lines that are not FIX messages instead of discarding them")
	fs.BoolVar(&cfg.Orders, "orders", false, "Track order state and print a report of the order book after each processed message")
	fs.StringVar(&cfg.Fields, "fields", "", "Comma separated list of field names or tags selecting order report columns; default is the standard order column set")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", envOr("FIXCAT_METRICS_ADDR", ""), "Address to serve Prometheus metrics on, empty to disable")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
