package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSources(t *testing.T) {
	path := writeSourceFile(t, `feeds:
  - name: Denník N
    url: https://dennikn.sk/rss
  - name: SME
    url: https://www.sme.sk/rss
`)

	sources := LoadSources(path)
	require.Len(t, sources, 2)
	assert.Equal(t, "Denník N", sources[0].Name)
	assert.Equal(t, "https://dennikn.sk/rss", sources[0].URL)
}

func TestLoadSources_MissingFile(t *testing.T) {
	sources := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Empty(t, sources)
}

func TestLoadSources_InvalidYAML(t *testing.T) {
	path := writeSourceFile(t, "feeds: [unclosed")
	assert.Empty(t, LoadSources(path))
}

func TestLoadSources_SkipsEntriesWithoutURL(t *testing.T) {
	path := writeSourceFile(t, `feeds:
  - name: bez adresy
  - url: https://example.com/rss
`)

	sources := LoadSources(path)
	require.Len(t, sources, 1)
	assert.Equal(t, "https://example.com/rss", sources[0].URL)
}

func TestMustLoadSources_EmptyIsError(t *testing.T) {
	_, err := MustLoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSource_Label(t *testing.T) {
	assert.Equal(t, "SME", Source{Name: "SME", URL: "https://www.sme.sk/rss"}.Label())
	assert.Equal(t, "https://www.sme.sk/rss", Source{URL: "https://www.sme.sk/rss"}.Label())
}
