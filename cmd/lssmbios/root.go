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

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yywing/go-smbios/internal/config"
	"github.com/yywing/go-smbios/internal/logging"
)

var (
	cfgFile string
	verbose bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lssmbios",
	Short: "Display SMBIOS information",
	Long: `lssmbios decodes the SMBIOS structure table of the running system, of
files captured from /sys/firmware/dmi/tables, or of physical memory images.

Settings are read from lssmbios.yaml in the working directory,
$HOME/.lssmbios or /etc/lssmbios, then from SMBIOS_ environment variables,
then from flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		level := c.LogLevel
		if verbose {
			level = "debug"
		}
		logging.Init(cmd.Root().Name(), level, os.Stderr)

		log.Debug().
			Str("output", c.Output).
			Str("entry_point_file", c.EntryPointFile).
			Str("table_file", c.TableFile).
			Str("memory_file", c.MemoryFile).
			Msg("loaded configuration")

		cfg = c
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: lssmbios.yaml in the search path)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringP("output", "o", config.OutputText, "output format (text, json, toml)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error, off)")
	pf.String("entry-point", "", "read the entry point from this file")
	pf.String("table", "", "read the structure table from this file")
	pf.String("memory", "", "locate SMBIOS data in this physical memory image")
	pf.Int("memory-base", config.DefaultMemoryBase, "physical address of the first byte of --memory")

	rootCmd.MarkFlagsMutuallyExclusive("memory", "table")
	rootCmd.MarkFlagsMutuallyExclusive("memory", "entry-point")
}
