package lang

import (
	"bytes"
	"container/list"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/xyproto/env/v2"
	"github.com/zeebo/xxh3"
)

// DefaultCacheSize is the default number of parse results kept by the cache.
const DefaultCacheSize = 512

// globalCache stores parse results keyed by a hash of source and options.
var globalCache = newCache(env.Int(EnvCacheSize, DefaultCacheSize))

// state tracks the single parse of one cache key.
type state struct {
	key    uint64
	once   sync.Once
	result *Result
	err    error
}

// cache is a bounded map of parse states that evicts the least recently
// used entry once it holds more than size entries.
type cache struct {
	mu      sync.Mutex
	size    int
	entries map[uint64]*list.Element
	recent  *list.List // front is most recently used
}

func newCache(size int) *cache {
	if size < 1 {
		size = DefaultCacheSize
	}

	return &cache{
		size:    size,
		entries: make(map[uint64]*list.Element),
		recent:  list.New(),
	}
}

// load returns the state stored under key, creating it when absent, and
// reports whether it was already present.
func (c *cache) load(key uint64) (*state, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.recent.MoveToFront(elem)

		return elem.Value.(*state), true
	}

	s := &state{key: key}
	c.entries[key] = c.recent.PushFront(s)

	c.evict()

	return s, false
}

// evict drops least recently used entries beyond the size bound.
// Must be called with c.mu held.
func (c *cache) evict() {
	for c.recent.Len() > c.size {
		oldest := c.recent.Back()
		c.recent.Remove(oldest)
		delete(c.entries, oldest.Value.(*state).key)
	}
}

func (c *cache) resize(size int) {
	if size < 1 {
		size = DefaultCacheSize
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.size = size
	c.evict()
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.recent.Len()
}

func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.recent.Init()
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	// Encode only the options that change the parsed result.
	_ = enc.Encode(o.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// parseCached parses text at most once per source and options while the
// result stays cached.
func parseCached(ctx context.Context, text string, o options) (*Result, error) {
	// Combine source hash with options hash for cache key uniqueness
	sourceHash := xxh3.HashString(text)
	optsHash := hashOptions(o)

	entry, cacheHit := globalCache.load(sourceHash ^ optsHash)

	o.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.result, entry.err = parse(ctx, text, o)
	})

	return entry.result, entry.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.clear()
}

// SetCacheSize bounds the number of cached parse results, evicting the least
// recently used ones beyond size. A size less than 1 selects
// [DefaultCacheSize].
func SetCacheSize(size int) {
	globalCache.resize(size)
}
