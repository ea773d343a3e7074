package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/dead", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_JSONEndToEnd(t *testing.T) {
	srv := startSite(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "bookmarks.json")
	output := filepath.Join(dir, "cleaned.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
	  "children": [
	    {"name": "F1", "children": [
	      {"name": "A", "url": "`+srv.URL+`/ok"},
	      {"name": "B", "url": "`+srv.URL+`/dead"}
	    ]},
	    {"name": "F2", "children": [
	      {"name": "C", "url": "`+srv.URL+`/dead"}
	    ]}
	  ]
	}`), 0o644))

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Input:     input,
		Output:    output,
		Timeout:   2 * time.Second,
		Workers:   4,
		HeadFirst: true,
	}, &out, zerolog.Nop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Checked 3 links")
	assert.Contains(t, out.String(), "Dead: 2")

	cleaned, err := os.ReadFile(output)
	require.NoError(t, err)
	got := string(cleaned)
	assert.Contains(t, got, srv.URL+"/ok")
	assert.NotContains(t, got, "/dead")
	assert.NotContains(t, got, "F2", "fully dead folder must be dropped")
}

func TestRun_NetscapeEndToEnd(t *testing.T) {
	srv := startSite(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "export.html")
	output := filepath.Join(dir, "cleaned.html")
	require.NoError(t, os.WriteFile(input, []byte(`<!DOCTYPE NETSCAPE-Bookmark-file-1>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="`+srv.URL+`/ok">Alive</A>
    <DT><A HREF="`+srv.URL+`/dead">Gone</A>
</DL><p>
`), 0o644))

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Input:     input,
		Output:    output,
		Timeout:   2 * time.Second,
		Workers:   2,
		HeadFirst: false,
	}, &out, zerolog.Nop())
	require.NoError(t, err)

	cleaned, err := os.ReadFile(output)
	require.NoError(t, err)
	got := string(cleaned)
	assert.Contains(t, got, "NETSCAPE-Bookmark-file-1")
	assert.Contains(t, got, "Alive")
	assert.NotContains(t, got, "Gone")
}

func TestRun_ReportHistory(t *testing.T) {
	srv := startSite(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "bookmarks.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"children":[{"name":"A","url":"`+srv.URL+`/ok"}]}`), 0o644))

	reportPath := filepath.Join(dir, "history.db")
	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Input:      input,
		Output:     filepath.Join(dir, "cleaned.json"),
		Timeout:    2 * time.Second,
		Workers:    2,
		ReportPath: reportPath,
	}, &out, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(reportPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRun_StructuralErrorLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "bookmarks.json")
	output := filepath.Join(dir, "cleaned.json")
	// A folder carrying a url next to children is a link with children once
	// decoded, which the parser rejects up front.
	require.NoError(t, os.WriteFile(input,
		[]byte(`{"children":[{"name":"bad","url":"https://x.example","children":[{"name":"A","url":"https://a.example"}]}]}`), 0o644))

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Input:   input,
		Output:  output,
		Timeout: time.Second,
		Workers: 2,
	}, &out, zerolog.Nop())
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no partial output on failure")
}

func TestRun_ValidatesConfig(t *testing.T) {
	cases := []Config{
		{Input: "", Output: "out.json", Timeout: time.Second, Workers: 1},
		{Input: "in.json", Output: "out.json", Timeout: 0, Workers: 1},
		{Input: "in.json", Output: "out.json", Timeout: time.Second, Workers: 0},
		{Input: "in.txt", Output: "out.json", Timeout: time.Second, Workers: 1},
	}
	for _, cfg := range cases {
		err := Run(context.Background(), cfg, &bytes.Buffer{}, zerolog.Nop())
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".tabtidy-"))
}
