package assets

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_EmbeddedFingerprint(t *testing.T) {
	ar := NewAssetResolverFromFS(fstest.MapFS{
		"css/app.css": {Data: []byte("body{}")},
	})

	url := ar.Resolve("css/app.css")
	require.True(t, strings.HasPrefix(url, "/static/css/app.css?v="), url)
	assert.Len(t, strings.TrimPrefix(url, "/static/css/app.css?v="), fingerprintLen)
	assert.Equal(t, url, ar.Resolve("/css/../css/app.css"), "names are cleaned")

	assert.Equal(t, "/static/js/missing.js", ar.Resolve("js/missing.js"))
}

func TestResolve_NilResolver(t *testing.T) {
	var ar *AssetResolver
	assert.Equal(t, "/static/css/app.css", ar.Resolve("css/app.css"))

	tmpl := template.Must(template.New("t").Funcs(ar.Funcs()).Parse(`{{ asset "js/app.js" }}`))
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, nil))
	assert.Equal(t, "/static/js/app.js", buf.String())
}

func TestResolve_DiskIsLive(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o600))

	ar, err := NewAssetResolverFromDisk(dir)
	require.NoError(t, err)
	first := ar.Resolve("app.js")

	require.NoError(t, os.WriteFile(file, []byte("two"), 0o600))
	assert.NotEqual(t, first, ar.Resolve("app.js"))

	_, err = NewAssetResolverFromDisk(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
