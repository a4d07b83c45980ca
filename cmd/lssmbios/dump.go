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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yywing/go-smbios/internal/config"
	"github.com/yywing/go-smbios/internal/report"
	"github.com/yywing/go-smbios/internal/source"
	"golang.org/x/sync/errgroup"
)

var dumpFull bool

var dumpCmd = &cobra.Command{
	Use:   "dump FILE...",
	Short: "Decode physical memory images",
	Long: `Dump locates and decodes the SMBIOS data of each physical memory image,
such as a copy of 0xF0000-0xFFFFF taken from /dev/mem. Images are decoded
concurrently; a summary of each is printed unless --full is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().BoolVar(&dumpFull, "full", false, "print every decoded structure instead of a summary")
}

// A summary describes a decoded memory image.
type summary struct {
	Source     string `json:"source" toml:"source"`
	Version    string `json:"version" toml:"version"`
	Structures int    `json:"structures" toml:"structures"`
	Failed     int    `json:"failed" toml:"failed"`
	Error      string `json:"error,omitempty" toml:"error,omitempty"`
}

// decodeImages decodes each image in its own goroutine. Each walk reads only
// its own buffer, so no state is shared between them.
func decodeImages(ctx context.Context, paths []string, base int) ([]*report.Report, []error) {
	reports := make([]*report.Report, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := source.Memory(path, base)
			if err != nil {
				errs[i] = err
				return nil
			}

			ss, err := src.Decoder().Decode()
			if err != nil {
				warnMalformed(path, err)
			}

			r := report.New(src.EntryPoint, ss)
			r.Source = path
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i := range errs {
			if reports[i] == nil && errs[i] == nil {
				errs[i] = err
			}
		}
	}

	return reports, errs
}

func runDump(ctx context.Context, paths []string) error {
	reports, errs := decodeImages(ctx, paths, cfg.MemoryBase)

	var sums []summary
	failed := 0
	for i, r := range reports {
		if err := errs[i]; err != nil {
			log.Error().Err(err).Str("source", paths[i]).Msg("failed to decode memory image")
			sums = append(sums, summary{Source: paths[i], Error: err.Error()})
			failed++
			continue
		}

		warnFailed(r)

		s := summary{
			Source:     r.Source,
			Structures: len(r.Structures),
			Failed:     len(r.Failed()),
		}
		if r.Entry != nil {
			s.Version = r.Entry.Version
		}
		sums = append(sums, s)

		if dumpFull {
			if err := report.Write(os.Stdout, cfg.Output, r, cfg.LongFlags); err != nil {
				return err
			}
		}
	}

	if !dumpFull {
		if err := writeSummaries(sums); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to decode %d of %d images", failed, len(paths))
	}
	return nil
}

func writeSummaries(sums []summary) error {
	switch cfg.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	case config.OutputTOML:
		return toml.NewEncoder(os.Stdout).Encode(struct {
			Images []summary `toml:"images"`
		}{Images: sums})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tVERSION\tSTRUCTURES\tFAILED\tERROR")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", s.Source, s.Version, s.Structures, s.Failed, s.Error)
	}

	return tw.Flush()
}
