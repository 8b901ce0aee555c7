package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/archive/archivetest"
)

type cliEnv struct {
	dir    string
	config string
	data   string
}

func setupCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := cliEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.yaml"),
		data:   filepath.Join(dir, "performances.json"),
	}
	yaml := "log_level: 8\ndatabase: " + filepath.Join(dir, "catalog.db") + "\npending_dates: [\"20251231\"]\n"
	require.NoError(t, os.WriteFile(env.config, []byte(yaml), 0644))
	require.NoError(t, os.WriteFile(env.data, []byte(archivetest.SampleJSON), 0644))
	return env
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	configPath, dataPath, cfg = "", "", nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestPerformanceTable(t *testing.T) {
	var buf bytes.Buffer
	writePerformanceTable(&buf, archivetest.Sample(), []string{"20251231"})
	out := buf.String()

	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "Bowery Ballroom")
	assert.Contains(t, out, "New York, NY, USA")
	assert.Contains(t, out, "(pending)")
	assert.Contains(t, out, "3 shows")
	assert.NotContains(t, out, "3 SHOWS")
	assert.Less(t, strings.Index(out, "20240301"), strings.Index(out, "20251231"))
}

func TestImportThenList(t *testing.T) {
	env := setupCLIEnv(t)
	runCLI(t, "--config", env.config, "import", env.data, "--pending", "20260101", "--note", "tour")

	out := runCLI(t, "--config", env.config, "list")
	assert.Contains(t, out, "Le Trabendo")
	assert.Contains(t, out, "The Lexington")
	assert.Contains(t, out, "20260101")
	assert.Contains(t, out, "20251231", "config pending dates are merged")
}

func TestLoadArchiveFromData(t *testing.T) {
	env := setupCLIEnv(t)
	out := runCLI(t, "--config", env.config, "--data", env.data, "list")
	assert.Contains(t, out, "Bowery Ballroom")
}

func TestRenderStdout(t *testing.T) {
	env := setupCLIEnv(t)
	out := runCLI(t, "--config", env.config, "--data", env.data,
		"render", "--date", "20240301", "--song", "", "-o", "-")

	assert.True(t, strings.HasPrefix(out, "<svg"), out)
	assert.Contains(t, out, `id="card-20240301"`)
	assert.Contains(t, out, `id="li-20240301-1"`)
	assert.NotContains(t, out, `id="card-20251130"`)
	assert.Contains(t, out, `<g id="connectors">`)
}

func TestRenderToFile(t *testing.T) {
	env := setupCLIEnv(t)
	target := filepath.Join(env.dir, "page.svg")
	runCLI(t, "--config", env.config, "--data", env.data,
		"render", "--date", "", "--song", "vines", "-o", target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="card-20240301"`)
}

func TestTimestampsCommand(t *testing.T) {
	env := setupCLIEnv(t)
	page := filepath.Join(env.dir, "description.html")
	html := `<a href="/watch?v=x&amp;t=0s">0:00</a> Credits<br><a href="/watch?v=x&amp;t=120s">2:00</a> john henry`
	require.NoError(t, os.WriteFile(page, []byte(html), 0644))

	out := runCLI(t, "--config", env.config, "timestamps", page, "v1")
	var items []archive.SetlistItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "John Henry", items[1].Title)
	assert.Equal(t, "v1", items[1].VideoID)
	require.NotNil(t, items[1].Start)
	assert.Equal(t, 120.0, *items[1].Start)
	assert.Equal(t, "2:00", items[1].Timestamp)
}

func TestTimestampsEmpty(t *testing.T) {
	env := setupCLIEnv(t)
	page := filepath.Join(env.dir, "empty.html")
	require.NoError(t, os.WriteFile(page, []byte("<p>no links</p>"), 0644))

	out := runCLI(t, "--config", env.config, "timestamps", page)
	assert.Equal(t, "[]\n", out)
}

func TestRenderIntoDirectory(t *testing.T) {
	env := setupCLIEnv(t)
	runCLI(t, "--config", env.config, "--data", env.data,
		"render", "--date", "20250510", "--song", "", "-o", env.dir)

	_, err := os.Stat(filepath.Join(env.dir, "setlist-20250510.svg"))
	assert.NoError(t, err)
}

func TestImportThenExport(t *testing.T) {
	env := setupCLIEnv(t)
	runCLI(t, "--config", env.config, "import", env.data)

	out := runCLI(t, "--config", env.config, "export", "-o", "-")
	a, err := archive.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, archivetest.Sample(), a)
}
