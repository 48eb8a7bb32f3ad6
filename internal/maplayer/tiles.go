package maplayer

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/maptile/tilecover"

	"headway/internal/domain"
)

const maxZoom = 22

// maxLon keeps the east edge inside the last tile column; 180 itself maps
// one column past it.
var maxLon = math.Nextafter(180, 0)

// TilesForBounds returns the z/x/y IDs of all web mercator tiles a route's
// bounds touch, so a client can prefetch them before drawing the route.
// Returns nil for inverted bounds or when more than maxTiles are needed.
func TilesForBounds(b domain.Bounds, zoom, maxTiles int) []string {
	if b.Southwest.Lat > b.Northeast.Lat || b.Southwest.Lon > b.Northeast.Lon {
		return nil
	}

	z := maptile.Zoom(min(max(zoom, 0), maxZoom))
	bound := clip(b.Bound())

	lo := maptile.At(bound.Min, z)
	hi := maptile.At(bound.Max, z)
	if count := int(hi.X-lo.X+1) * int(lo.Y-hi.Y+1); count > maxTiles {
		return nil
	}

	set := tilecover.Bound(bound, z)
	tiles := make([]string, 0, len(set))
	for t := range set {
		tiles = append(tiles, fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y))
	}
	sort.Strings(tiles)
	return tiles
}

func clip(b orb.Bound) orb.Bound {
	b.Min[0] = math.Max(b.Min[0], -180)
	b.Max[0] = math.Min(b.Max[0], maxLon)
	return b
}
