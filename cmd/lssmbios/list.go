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
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yywing/go-smbios/internal/report"
	"github.com/yywing/go-smbios/internal/source"
	"github.com/yywing/go-smbios/smbios"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List and decode every SMBIOS structure",
	Long: `List decodes every structure of the SMBIOS table.

Examples:
  # Decode the running system
  lssmbios list

  # Decode captured sysfs files as JSON with long flag names
  lssmbios list --entry-point smbios_entry_point --table DMI -o json --long`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("long", false, "print long descriptions of flags")
}

func runList() error {
	src, err := source.Load(cfg)
	if err != nil {
		return err
	}

	ss, err := src.Decoder().Decode()
	if err != nil {
		// Keep the structures decoded before the malformed one.
		warnMalformed(src.Name, err)
	}

	r := report.New(src.EntryPoint, ss)
	r.Source = src.Name
	warnFailed(r)

	return report.Write(os.Stdout, cfg.Output, r, cfg.LongFlags)
}

// warnMalformed logs a table walk that ended early.
func warnMalformed(name string, err error) {
	ev := log.Warn().Str("source", name).Err(err)

	var sse *smbios.StructureSizeError
	var use *smbios.UnterminatedStringsError
	switch {
	case errors.As(err, &sse):
		ev = ev.Int("offset", sse.Offset).Uint8("length", sse.Length)
	case errors.As(err, &use):
		ev = ev.Int("offset", use.Offset)
	}

	ev.Msg("structure table is malformed, showing partial results")
}

// warnFailed logs structures which could not be decoded.
func warnFailed(r *report.Report) {
	for _, rec := range r.Failed() {
		log.Warn().
			Str("source", r.Source).
			Uint16("handle", rec.Handle).
			Stringer("type", rec.Type).
			Msg(rec.Error)
	}
}
