// FILE: lixenwraith/recorder/cmd/recorder/cmd_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/recorder"
	"github.com/lixenwraith/recorder/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with args and stdin, returning stdout
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSubcommandRegistration(t *testing.T) {
	root := newRootCmd()
	commands := make(map[string]bool)
	for _, c := range root.Commands() {
		commands[c.Name()] = true
	}
	for _, name := range []string{"write", "mask", "export", "stress"} {
		assert.True(t, commands[name], "missing subcommand: %s", name)
	}
}

func TestWriteCmd(t *testing.T) {
	dir := t.TempDir()
	input := "plain text\n{\"password\":\"x\",\"a\":1}\n\n[1,2]\n\"quoted\"\n"

	out, err := runCmd(t, input, "write", "--set", "directory="+dir, "--set", "destination=")
	require.NoError(t, err)
	assert.Contains(t, out, "4 lines read, 4 entries written, 0 dropped")

	data, err := os.ReadFile(filepath.Join(dir, "LogRecorder_Log.log"))
	require.NoError(t, err)

	var payloads []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		_, payload, found := strings.Cut(line, formatter.Separator)
		require.True(t, found)
		payloads = append(payloads, payload)
	}
	assert.Equal(t, []string{`plain text`, `{"password":"x","a":1}`, `[1,2]`, `"quoted"`}, payloads)
}

func TestWriteCmdPlain(t *testing.T) {
	dir := t.TempDir()
	_, err := runCmd(t, "{\"a\":\t1}\n", "write", "--plain", "--set", "directory="+dir, "--set", "destination=", "--set", "text_sanitization=escape")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "LogRecorder_Log.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ` | {"a":\t1}`)
}

func TestWriteCmdInvalidOverride(t *testing.T) {
	_, err := runCmd(t, "", "write", "--set", "queue_capacity=lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue_capacity")
}

func TestMaskCmd(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("rules:\n  - kind: full\n    keys: [password]\n  - kind: email\n    keys: [email]\n"), 0644))

	input := "{\"user\":\"bob\",\"password\":\"hunter2\",\"email\":\"test@example.com\"}\n\n[{\"password\":\"ab\"}]\n"
	out, err := runCmd(t, input, "mask", "--rules", rules)
	require.NoError(t, err)
	assert.Equal(t,
		"{\"user\":\"bob\",\"password\":\"*******\",\"email\":\"t**t@example.com\"}\n"+
			"[{\"password\":\"**\"}]\n", out)
}

func TestMaskCmdErrors(t *testing.T) {
	_, err := runCmd(t, "", "mask")
	require.Error(t, err, "rules flag is required")

	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("rules: []\n"), 0644))
	_, err = runCmd(t, "{\"a\":\n", "mask", "--rules", rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestExportCmd(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(srcDir, "app.log")
	require.NoError(t, os.WriteFile(src, []byte("line one\nline two\n"), 0644))

	out, err := runCmd(t, "", "export", src, "--target", outDir, "--overwrite")
	require.NoError(t, err)
	assert.Contains(t, out, "as app.log")

	exported, err := os.ReadFile(filepath.Join(outDir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(exported))

	// The source is truncated after a successful export
	info, err := os.Stat(src)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFileConfig(t *testing.T) {
	cfg, err := loadConfigForTest(t)
	require.NoError(t, err)

	require.NoError(t, fileConfig(cfg, "/var/log/app.txt"))
	assert.Equal(t, "/var/log", cfg.Directory)
	assert.Equal(t, "app", cfg.Name)
	assert.Equal(t, "txt", cfg.Extension)

	require.NoError(t, fileConfig(cfg, "/var/log/session"))
	assert.Equal(t, "session", cfg.Name)
	assert.Empty(t, cfg.Extension)

	assert.Error(t, fileConfig(cfg, "/"))
}

func loadConfigForTest(t *testing.T) (*recorder.Config, error) {
	t.Helper()
	configPath, overrides = "", nil
	return loadConfig()
}

func TestStressCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := runCmd(t, "", "stress", "--workers", "4", "--entries", "50", "--size", "32",
		"--set", "directory="+dir, "--set", "destination=", "--set", "queue_capacity=10000")
	require.NoError(t, err)
	assert.Contains(t, out, "stress: 4 workers x 50 entries")
	assert.Contains(t, out, "written=200 dropped=0")
}

func TestStressCmdInvalidOptions(t *testing.T) {
	_, err := runCmd(t, "", "stress", "--workers", "0")
	require.Error(t, err)
}
