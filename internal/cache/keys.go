package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const KeyRoutePrefix = "route:"

// KeyRoute is the cache key for an upstream route request. The request is
// hashed so long JSON bodies stay out of the key space.
func KeyRoute(requestJSON []byte) string {
	return KeyRoutePrefix + strconv.FormatUint(xxhash.Sum64(requestJSON), 16)
}

// KeyAllRoutes matches every cached route response.
func KeyAllRoutes() string {
	return KeyRoutePrefix + "*"
}
