package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/docfacts/internal/docfacts"
)

// cachedFile is what one source text extracts to.
type cachedFile struct {
	declarations []docfacts.Declaration
	parseErrors  bool
}

// resultCache memoizes extraction by content hash, so unchanged files are
// not reparsed across watch cycles or repeated scans.
type resultCache struct {
	entries otter.Cache[string, cachedFile]
	hits    atomic.Int64
}

func newResultCache(capacity int) (*resultCache, error) {
	entries, err := otter.MustBuilder[string, cachedFile](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build result cache: %w", err)
	}
	return &resultCache{entries: entries}, nil
}

func contentKey(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func (c *resultCache) get(key string) (cachedFile, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	}
	return v, ok
}

func (c *resultCache) set(key string, v cachedFile) {
	c.entries.Set(key, v)
}

func (c *resultCache) close() {
	c.entries.Close()
}
