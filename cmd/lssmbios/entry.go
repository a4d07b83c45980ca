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
	"os"

	"github.com/spf13/cobra"
	"github.com/yywing/go-smbios/internal/report"
	"github.com/yywing/go-smbios/internal/source"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Display the SMBIOS entry point",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := source.LoadEntryPoint(cfg)
		if err != nil {
			return err
		}

		r := report.New(src.EntryPoint, nil)
		r.Source = src.Name
		return report.Write(os.Stdout, cfg.Output, r, false)
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)
}
