// Package assetcache is the installable-shell layer: a version-tagged
// cache of static assets that keeps the app loadable offline. It is an
// external collaborator of the diary core; record data never flows
// through it.
package assetcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const cacheDirPrefix = "cache-"

// Manager owns one version tag's asset cache under a root directory.
// Sibling directories with other version tags are previous installs,
// deleted on activation.
type Manager struct {
	version string
	baseURL string
	root    string
	client  *http.Client
}

func New(version, baseURL, root string) *Manager {
	return &Manager{
		version: version,
		baseURL: strings.TrimRight(baseURL, "/"),
		root:    root,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetClient overrides the HTTP client, mainly for tests.
func (m *Manager) SetClient(c *http.Client) {
	if c != nil {
		m.client = c
	}
}

// Dir returns this version's cache directory.
func (m *Manager) Dir() string {
	return filepath.Join(m.root, cacheDirPrefix+m.version)
}

// Install fetches every manifest path with force-reload semantics
// (bypassing intermediate caches) and stores it under the version-tagged
// directory. Any single failure fails the whole install; a partial cache
// directory is left behind and simply overwritten on the next attempt.
func (m *Manager) Install(ctx context.Context, manifest []string) error {
	if err := os.MkdirAll(m.Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	for _, p := range manifest {
		data, err := m.fetch(ctx, p, true)
		if err != nil {
			return fmt.Errorf("failed to cache %s: %w", p, err)
		}
		dest := m.assetPath(p)
		if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
			return fmt.Errorf("failed to create cache subdirectory: %w", err)
		}
		if err := os.WriteFile(dest, data, 0600); err != nil {
			return fmt.Errorf("failed to store %s: %w", p, err)
		}
	}
	return nil
}

// Activate deletes every sibling cache whose version tag differs from the
// current one. Run after a successful install.
func (m *Manager) Activate() error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache root: %w", err)
	}

	current := cacheDirPrefix + m.version
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), cacheDirPrefix) || e.Name() == current {
			continue
		}
		if err := os.RemoveAll(filepath.Join(m.root, e.Name())); err != nil {
			return fmt.Errorf("failed to drop stale cache %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Serve returns the cached asset for a path if present, otherwise fetches
// it from the network. Network failure propagates as the request failure;
// there is no offline fallback page.
func (m *Manager) Serve(ctx context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(m.assetPath(p))
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read cached asset %s: %w", p, err)
	}
	return m.fetch(ctx, p, false)
}

func (m *Manager) fetch(ctx context.Context, p string, forceReload bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/"+strings.TrimLeft(p, "/"), nil)
	if err != nil {
		return nil, err
	}
	if forceReload {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// assetPath maps a request path to its on-disk location inside the cache,
// normalizing the path so an asset cannot escape the cache directory.
func (m *Manager) assetPath(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	clean := path.Clean("/" + p)
	if clean == "/" {
		clean = "/index.html"
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}
