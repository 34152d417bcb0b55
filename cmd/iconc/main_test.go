package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/icons"
)

const segmentText = `1 0F0
2 F00
3 00F

#1
x = 3, y = 3
.A$2.A$3A!
#3
x = 3, y = 3
3C$3C$3C!
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsAndYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "iconc.yaml", `
input: icons.txt
start_line: 12
colors:
  2: "ff0000"
preview:
  path: out.png
  scale: 4
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "icons.txt", cfg.Input)
	assert.Equal(t, 12, cfg.StartLine)
	assert.Equal(t, map[int]string{2: "ff0000"}, cfg.Colors)
	assert.Equal(t, 4, cfg.Preview.Scale)
	assert.Equal(t, "000000", cfg.Preview.Background)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ICONC_INPUT", "from-env.txt")
	t.Setenv("ICONC_HEIGHT", "15")
	t.Setenv("ICONC_PREVIEW_SCALE", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env.txt", cfg.Input)
	assert.Equal(t, 15, cfg.Height)
	assert.Equal(t, 2, cfg.Preview.Scale)
}

func TestLoadIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("PATH", "/usr/local/bin:/usr/bin:/bin")
	t.Setenv("HEIGHT", "9")
	t.Setenv("INPUT", "stray.txt")
	t.Setenv("SCALE", "99")
	t.Setenv("ICONC_START_LINE", "7")
	t.Setenv("ICONC_PREVIEW_PATH", "out.bmp")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Input)
	assert.Zero(t, cfg.Height)
	assert.Equal(t, 8, cfg.Preview.Scale)
	assert.Equal(t, 7, cfg.StartLine)
	assert.Equal(t, "out.bmp", cfg.Preview.Path)

	cfg.Input = "icons.txt"
	require.NoError(t, cfg.Validate())
}

func TestLoadUnknownFieldTolerated(t *testing.T) {
	path := writeFile(t, t.TempDir(), "iconc.yaml", "input: a.txt\ninptu: typo\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", cfg.Input)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing input", func(c *Config) { c.Input = "" }, "Input"},
		{"bad height", func(c *Config) { c.Height = 9 }, "Height"},
		{"bad scale", func(c *Config) { c.Preview.Scale = 0 }, "Scale"},
		{"bad preview ext", func(c *Config) { c.Preview.Path = "out.gif" }, "Path"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"bad colour", func(c *Config) { c.Colors = map[int]string{2: "red"} }, "colors.2"},
		{"bad state", func(c *Config) { c.Colors = map[int]string{300: "FFF"} }, "colors.300"},
		{"bad background", func(c *Config) { c.Preview.Background = "xyz" }, "preview.background"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Input = "icons.txt"
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Input = writeFile(t, dir, "icons.txt", segmentText)
	cfg.Output = filepath.Join(dir, "icons.xpm")
	cfg.Colors = map[int]string{2: "f00"}
	cfg.Preview.Path = filepath.Join(dir, "icons.png")
	cfg.Preview.Scale = 2
	require.NoError(t, cfg.Validate())

	var stdout bytes.Buffer
	require.NoError(t, run(cfg, icons.NopLogger(), &stdout))
	assert.Empty(t, stdout.String())

	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	assert.Equal(t, "XPM", lines[0])
	assert.Equal(t, `"7 21 3 2"`, lines[1])
	// State 2 reuses the header symbol for F00.
	assert.Equal(t, `"`+strings.Repeat("BB", 7)+`"`, lines[5+7])

	fi, err := os.Stat(cfg.Preview.Path)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())
}

func TestRunStdoutAndTerminal(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Input = writeFile(t, dir, "icons.txt", segmentText)
	cfg.Colors = map[int]string{2: "00F"}
	cfg.Seed = 5
	cfg.Preview.Terminal = true

	var stdout bytes.Buffer
	require.NoError(t, run(cfg, icons.NopLogger(), &stdout))
	assert.True(t, strings.HasPrefix(stdout.String(), "XPM\n"))
	assert.Contains(t, stdout.String(), "state 3")
}

func TestRunReportsSegmentErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Input = writeFile(t, dir, "icons.txt", "#1\nA\n#3\nC\n")
	cfg.StartLine = 50

	err := run(cfg, icons.NopLogger(), &bytes.Buffer{})
	var re *icons.ReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.State)
	assert.Equal(t, 50, re.Line)
}
