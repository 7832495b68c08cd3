// Package assets resolves optional asset files from a list of search roots and caches their bytes.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// ImageExtensions are tried, in order, for names given without a usable extension.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tga"}

// Manager handles asset loading from directory roots.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager over the given roots.
func NewManager(roots ...string) *Manager {
	m := &Manager{
		cache: NewCache(),
	}
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

// AddRoot adds a search directory.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) {
	if dir == "" {
		return
	}
	m.mu.Lock()
	m.roots = append(m.roots, filepath.Clean(dir))
	m.mu.Unlock()
}

// Roots returns a copy of the search roots.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.roots...)
}

// Resolve finds the on-disk path for name. Absolute paths are used as is.
// If name has no extension, or the exact file is missing, every ImageExtensions
// variant of its stem is tried in each root.
func (m *Manager) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	candidates := candidates(name)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		for _, c := range candidates {
			p := filepath.Join(m.roots[i], c)
			if isFile(p) {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load resolves name and returns its bytes along with the resolved path.
func (m *Manager) Load(name string) ([]byte, string, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, "", err
	}

	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, path, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, path, nil
}

// Invalidate drops the cached bytes for name so the next Load reads the file again.
func (m *Manager) Invalidate(name string) {
	if path, err := m.Resolve(name); err == nil {
		m.cache.Delete(path)
	}
}

// Cache returns the byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops the cache.
func (m *Manager) Close() {
	m.cache.Clear()
}

func candidates(name string) []string {
	name = filepath.FromSlash(name)
	ext := strings.ToLower(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	out := []string{name}
	for _, e := range ImageExtensions {
		if e != ext {
			out = append(out, stem+e)
		}
	}
	return out
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// List returns the absolute paths of the files directly under every root,
// most recent root first. Each entry can be passed back to Load.
func (m *Manager) List() []string {
	m.mu.RLock()
	roots := append([]string(nil), m.roots...)
	m.mu.RUnlock()

	var out []string
	for i := len(roots) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(roots[i])
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			p := filepath.Join(roots[i], e.Name())
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
			out = append(out, p)
		}
	}
	return out
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes one item.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
