// Copyright 2017-2018 DigitalOcean.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads settings for the SMBIOS commands from a config file,
// SMBIOS_ environment variables and command line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats understood by the report package.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputTOML = "toml"
)

// DefaultMemoryBase is the physical address of the legacy BIOS area scanned
// for an entry point.
const DefaultMemoryBase = 0x000f0000

// Config holds the settings of a command invocation.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`

	// Pre-captured SMBIOS data. When no file is set, the live system is read.
	EntryPointFile string `mapstructure:"entry_point_file"`
	TableFile      string `mapstructure:"table_file"`
	MemoryFile     string `mapstructure:"memory_file"`
	MemoryBase     int    `mapstructure:"memory_base"`

	LongFlags bool `mapstructure:"long_flags"`
}

// Flags maps config keys to the command line flags which override them.
var Flags = map[string]string{
	"log_level":        "log-level",
	"output":           "output",
	"entry_point_file": "entry-point",
	"table_file":       "table",
	"memory_file":      "memory",
	"memory_base":      "memory-base",
	"long_flags":       "long",
}

// Load reads the configuration. If path is empty, lssmbios.yaml is searched
// for in the working directory, $HOME/.lssmbios and /etc/lssmbios; a missing
// file is not an error. Flags set in fs take precedence over the environment,
// which takes precedence over the file.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lssmbios")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lssmbios")
		v.AddConfigPath("/etc/lssmbios")
	}

	v.SetDefault("log_level", "info")
	v.SetDefault("output", OutputText)
	v.SetDefault("entry_point_file", "")
	v.SetDefault("table_file", "")
	v.SetDefault("memory_file", "")
	v.SetDefault("memory_base", DefaultMemoryBase)
	v.SetDefault("long_flags", false)

	v.SetEnvPrefix("SMBIOS")
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range Flags {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %q: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports inconsistent settings.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputTOML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}

	if c.MemoryFile != "" && (c.TableFile != "" || c.EntryPointFile != "") {
		return errors.New("config: memory_file cannot be combined with table_file or entry_point_file")
	}
	if c.TableFile != "" && c.EntryPointFile == "" {
		return errors.New("config: table_file requires entry_point_file")
	}
	if c.MemoryBase < 0 {
		return fmt.Errorf("config: negative memory_base %#x", c.MemoryBase)
	}

	return nil
}
