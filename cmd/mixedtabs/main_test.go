package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestCheckText(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"mixed.go": "package x\n\tfoo\n    bar\n",
		"clean.go": "\tfoo\n  bar\n",
	})
	mixed := filepath.Join(dir, "mixed.go")
	clean := filepath.Join(dir, "clean.go")

	out, _, err := execute(t, "check", clean)
	require.NoError(t, err)
	assert.Equal(t, clean+": ok\n", out)

	out, _, err = execute(t, "check", clean, mixed)
	assert.ErrorIs(t, err, errMixed)
	assert.Contains(t, out, mixed+": mixed (1 tab-indented lines from line 2, 1 space-indented lines from line 3)")
}

func TestCheckJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "\tfoo\n  bar\n"})
	path := filepath.Join(dir, "a.go")

	out, _, err := execute(t, "check", "--json", "--tab-width", "2", path)
	assert.ErrorIs(t, err, errMixed)

	require.True(t, gjson.Valid(out), out)
	report := gjson.Parse(out)
	assert.Equal(t, int64(2), report.Get("tabWidth").Int())
	assert.True(t, report.Get("mixed").Bool())
	assert.Equal(t, path, report.Get("files.0.path").String())
	assert.Equal(t, int64(1), report.Get("files.0.firstTabLine").Int())
	assert.Equal(t, int64(2), report.Get("files.0.firstSpaceLine").Int())
	assert.Equal(t, "lf", report.Get("files.0.lineEnding").String())

	out, _, err = execute(t, "check", "--json", path)
	require.NoError(t, err)
	report = gjson.Parse(out)
	assert.False(t, report.Get("mixed").Bool())
	assert.Equal(t, gjson.Null, report.Get("files.0.firstSpaceLine").Type)
}

func TestTabifyAndUntabify(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "\tfoo\n        bar\n"})
	path := filepath.Join(dir, "a.go")

	out, _, err := execute(t, "tabify", "--dry-run", path)
	require.NoError(t, err)
	assert.Equal(t, path+": would change 1 lines\n", out)
	assert.Equal(t, "\tfoo\n        bar\n", readFile(t, path))

	out, _, err = execute(t, "tabify", path)
	require.NoError(t, err)
	assert.Equal(t, path+": changed 1 lines\n", out)
	assert.Equal(t, "\tfoo\n\t\tbar\n", readFile(t, path))

	_, _, err = execute(t, "untabify", "-t", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "  foo\n    bar\n", readFile(t, path))
}

func TestConvertKeepsLineEndings(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "\tA\r\n        B\nC\rD\n"})
	path := filepath.Join(dir, "a.go")

	out, _, err := execute(t, "check", "--json", path)
	assert.ErrorIs(t, err, errMixed)
	assert.Equal(t, "crlf", gjson.Get(out, "files.0.lineEnding").String())

	_, _, err = execute(t, "tabify", path)
	require.NoError(t, err)
	assert.Equal(t, "\tA\r\n\t\tB\nC\rD\n", readFile(t, path))
}

func TestConvertCursor(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "\tfoo\n        bar\n"})
	path := filepath.Join(dir, "a.go")

	out, _, err := execute(t, "tabify", "--cursor", "2:9", path)
	require.NoError(t, err)
	assert.Equal(t, path+": changed 1 lines\n"+path+": cursor 2:3\n", out)

	out, _, err = execute(t, "untabify", "--cursor", "1:2", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+": cursor 1:5\n")

	tests := map[string][]string{
		"bad format":     {"tabify", "--cursor", "7", path},
		"zero line":      {"tabify", "--cursor", "0:1", path},
		"past last line": {"tabify", "--cursor", "9:1", path},
		"past line end":  {"tabify", "--cursor", "1:40", path},
		"two files":      {"tabify", "--cursor", "1:1", path, path},
		"with dry run":   {"tabify", "--cursor", "1:1", "--dry-run", path},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestFlagsOverrideInvalidConfigFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.go":           "\tfoo\n",
		"mixedtabs.toml": "[editor]\ntabSize = 0\n",
	})
	cfgPath := filepath.Join(dir, "mixedtabs.toml")
	path := filepath.Join(dir, "a.go")

	_, _, err := execute(t, "check", "--config", cfgPath, path)
	assert.ErrorContains(t, err, "editor.tabSize")

	out, _, err := execute(t, "check", "--config", cfgPath, "--tab-width", "8", path)
	require.NoError(t, err)
	assert.Equal(t, path+": ok\n", out)
}

func TestGlobalFlagValidation(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.go": "x\n"})
	path := filepath.Join(dir, "a.go")

	_, _, err := execute(t, "check", "--tab-width", "0", path)
	assert.ErrorContains(t, err, "editor.tabSize")

	_, _, err = execute(t, "check", "--log-level", "loud", path)
	assert.ErrorContains(t, err, "logging.level")

	_, _, err = execute(t, "watch", "--auto-fix", "retab", path)
	assert.ErrorContains(t, err, "infobar.autoFix")

	_, _, err = execute(t, "check")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.go":          "\tfoo\n  bar\n",
		"mixedtabs.yml": "editor:\n  tabSize: 2\n",
	})

	_, _, err := execute(t, "check", "--config", filepath.Join(dir, "mixedtabs.yml"), filepath.Join(dir, "a.go"))
	assert.ErrorIs(t, err, errMixed)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mixedtabs dev"), out)
}

func TestRunExitCodes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"mixed.go": "\tfoo\n    bar\n",
		"clean.go": "\tfoo\n",
	})

	assert.Equal(t, exitOK, run([]string{"check", filepath.Join(dir, "clean.go")}))
	assert.Equal(t, exitMixed, run([]string{"check", filepath.Join(dir, "mixed.go")}))
	assert.Equal(t, exitError, run([]string{"check", filepath.Join(dir, "missing.go")}))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
