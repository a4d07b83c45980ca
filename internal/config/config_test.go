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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yywing/go-smbios/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lssmbios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, &config.Config{
		LogLevel:   "info",
		Output:     config.OutputText,
		MemoryBase: config.DefaultMemoryBase,
	}, cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
output: json
entry_point_file: /tmp/smbios_entry_point
table_file: /tmp/DMI
long_flags: true
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.OutputJSON, cfg.Output)
	assert.Equal(t, "/tmp/smbios_entry_point", cfg.EntryPointFile)
	assert.Equal(t, "/tmp/DMI", cfg.TableFile)
	assert.True(t, cfg.LongFlags)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "output: json\nlog_level: debug\nmemory_base: 0xe0000\n")
	t.Setenv("SMBIOS_OUTPUT", "toml")
	t.Setenv("SMBIOS_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("lssmbios", pflag.ContinueOnError)
	fs.String("output", "text", "")
	fs.String("log-level", "info", "")
	fs.Bool("long", false, "")
	require.NoError(t, fs.Parse([]string{"--output", "text"}))

	cfg, err := config.Load(path, fs)
	require.NoError(t, err)

	// A changed flag beats the environment, which beats the file.
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 0xe0000, cfg.MemoryBase)
	assert.False(t, cfg.LongFlags)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err, "explicit config files must exist")

	path := writeConfig(t, "output: [unclosed\n")
	_, err = config.Load(path, nil)
	assert.Error(t, err)

	path = writeConfig(t, "output: xml\n")
	_, err = config.Load(path, nil)
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		ok   bool
	}{
		{
			name: "live system",
			cfg:  config.Config{Output: config.OutputText},
			ok:   true,
		},
		{
			name: "sysfs files",
			cfg:  config.Config{Output: config.OutputTOML, EntryPointFile: "ep", TableFile: "dmi"},
			ok:   true,
		},
		{
			name: "entry point only",
			cfg:  config.Config{Output: config.OutputJSON, EntryPointFile: "ep"},
			ok:   true,
		},
		{
			name: "table without entry point",
			cfg:  config.Config{Output: config.OutputText, TableFile: "dmi"},
		},
		{
			name: "memory and table",
			cfg:  config.Config{Output: config.OutputText, MemoryFile: "mem", TableFile: "dmi", EntryPointFile: "ep"},
		},
		{
			name: "negative base",
			cfg:  config.Config{Output: config.OutputText, MemoryFile: "mem", MemoryBase: -1},
		},
		{
			name: "no output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
