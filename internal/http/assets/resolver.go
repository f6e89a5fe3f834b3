// Package assets resolves static asset names to cache-busting URLs.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
)

// URLPrefix is where static assets are mounted.
const URLPrefix = "/static/"

const fingerprintLen = 10

// AssetResolver maps logical asset names ("css/app.css") to URLs carrying a content
// fingerprint ("/static/css/app.css?v=3f2a..."). Fingerprints are computed lazily and
// cached unless the resolver watches a live directory.
type AssetResolver struct {
	fsys   fs.FS
	live   bool
	mu     sync.RWMutex
	sums   map[string]string
	logger *slog.Logger
}

// NewAssetResolverFromDisk creates a resolver over a directory on disk. Fingerprints are
// recomputed on every lookup so edits show up without a restart.
func NewAssetResolverFromDisk(dir string) (*AssetResolver, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	return &AssetResolver{
		fsys:   os.DirFS(dir),
		live:   true,
		sums:   make(map[string]string),
		logger: slog.Default(),
	}, nil
}

// NewAssetResolverFromFS creates a resolver over fsys, typically the embedded static tree.
func NewAssetResolverFromFS(fsys fs.FS) *AssetResolver {
	return &AssetResolver{
		fsys:   fsys,
		sums:   make(map[string]string),
		logger: slog.Default(),
	}
}

// Resolve returns the URL for a logical asset name. Unknown files resolve to their
// plain URL so a missing asset degrades to a 404 rather than a broken template.
func (ar *AssetResolver) Resolve(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	url := URLPrefix + name
	if ar == nil {
		return url
	}
	sum := ar.fingerprint(name)
	if sum == "" {
		return url
	}
	return url + "?v=" + sum
}

func (ar *AssetResolver) fingerprint(name string) string {
	if !ar.live {
		ar.mu.RLock()
		sum, ok := ar.sums[name]
		ar.mu.RUnlock()
		if ok {
			return sum
		}
	}

	sum, err := hashFile(ar.fsys, name)
	if err != nil {
		ar.logger.Debug("asset fingerprint unavailable", "asset", name, "error", err)
		sum = ""
	}
	if !ar.live {
		ar.mu.Lock()
		ar.sums[name] = sum
		ar.mu.Unlock()
	}
	return sum
}

func hashFile(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen], nil
}

// Funcs exposes Resolve to templates as {{ asset "css/app.css" }}. A nil resolver
// yields the plain /static URL.
func (ar *AssetResolver) Funcs() template.FuncMap {
	return template.FuncMap{"asset": ar.Resolve}
}
