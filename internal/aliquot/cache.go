package aliquot

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the memoization cache introduced below; tract
// description blocks repeat often in bulk ingestion (the same boilerplate
// "ALL" or "NE/4" phrasing appears across thousands of tracts in a single
// county's records), so memoizing Parse by its (desc, options) key pays
// for itself well before it risks unbounded growth.
const cacheSize = 4096

var parseCache, _ = lru.New[string, Result](cacheSize)

func cacheKey(desc string, opts Options) string {
	return fmt.Sprintf("%s\x00%t%t%t%d%d", desc, opts.IncludeLotDivisions, opts.CleanQQ, opts.BreakHalves, opts.QQDepthMin, opts.QQDepthMax)
}

// ParseCached is Parse with memoization keyed on the description text and
// the options that affect its output. Because Parse is a pure function of
// its two inputs (§4.G's idempotence guarantee), caching never becomes
// stale: the same key always maps to the same Result.
func ParseCached(desc string, opts Options) Result {
	key := cacheKey(desc, opts)
	if cached, ok := parseCache.Get(key); ok {
		return cached
	}
	res := Parse(desc, opts)
	parseCache.Add(key, res)
	return res
}
