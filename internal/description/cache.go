package description

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
)

// PRKey identifies a pull request across repositories
type PRKey struct {
	Owner  string
	Repo   string
	Number int
}

// String returns the key as owner/repo#number
func (k PRKey) String() string {
	return fmt.Sprintf("%s/%s#%d", k.Owner, k.Repo, k.Number)
}

type cacheEntry struct {
	fingerprint string
	rendered    string
}

// Cache stores rendered descriptions per pull request. An entry is only
// served while the input it was rendered from is unchanged.
type Cache struct {
	mu      sync.Mutex
	entries map[PRKey]cacheEntry
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[PRKey]cacheEntry)}
}

// Get returns the cached description for key if it was rendered from the same fingerprint
func (c *Cache) Get(key PRKey, fingerprint string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if entry.fingerprint != fingerprint {
		delete(c.entries, key)
		return "", false
	}
	return entry.rendered, true
}

// Put stores a rendered description for key
func (c *Cache) Put(key PRKey, fingerprint, rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{fingerprint: fingerprint, rendered: rendered}
}

// Invalidate drops the entry for key
func (c *Cache) Invalidate(key PRKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[PRKey]cacheEntry)
}

// Len returns the number of cached descriptions
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fingerprint hashes every field of the input that affects the rendered description
func Fingerprint(in *Input) string {
	h := sha256.New()
	fmt.Fprintf(h, "commits:%d\n", len(in.Commits))
	for _, commit := range in.Commits {
		fmt.Fprintf(h, "%q\n", commit)
	}
	fmt.Fprintf(h, "approvals:%d\ndescription:%q\n", in.PR.Approvals, in.PR.Description)
	fmt.Fprintf(h, "files:%d\n", len(in.Files))
	for _, file := range in.Files {
		fmt.Fprintf(h, "%q %q %q\n", file.Path, file.Diff, file.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Describer renders descriptions and memoizes them per pull request
type Describer struct {
	cache *Cache
	opts  Options
}

// NewDescriber creates a describer backed by cache. A nil cache disables memoization.
func NewDescriber(cache *Cache, opts Options) *Describer {
	return &Describer{cache: cache, opts: opts}
}

// Describe returns the description for key, reusing the cached one when the input is unchanged
func (d *Describer) Describe(key PRKey, in *Input) (string, error) {
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("failed to describe %s: %w", key, err)
	}

	fingerprint := Fingerprint(in)
	if d.cache != nil {
		if rendered, ok := d.cache.Get(key, fingerprint); ok {
			slog.Debug("Using cached description", "pr", key.String())
			return rendered, nil
		}
	}

	rendered, err := Assemble(in, d.opts)
	if err != nil {
		return "", fmt.Errorf("failed to describe %s: %w", key, err)
	}

	if d.cache != nil {
		d.cache.Put(key, fingerprint, rendered)
	}
	return rendered, nil
}
