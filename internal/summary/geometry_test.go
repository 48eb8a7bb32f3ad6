package summary

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headway/internal/domain"
)

func encodeShape(latLons [][]float64) string {
	return string(shapeCodec.EncodeCoords(nil, latLons))
}

func TestDecodeGeometry(t *testing.T) {
	shape := encodeShape([][]float64{
		{47.606209, -122.332071},
		{47.609722, -122.333056},
		{47.620422, -122.349358},
	})
	s := domain.RouteSummary{Shape: shape}

	feature, err := DecodeGeometry(s)
	require.NoError(t, err)

	line, ok := feature.Geometry.(orb.LineString)
	require.True(t, ok)
	require.Len(t, line, 3)
	assert.InDelta(t, -122.332071, line[0].Lon(), 1e-6)
	assert.InDelta(t, 47.606209, line[0].Lat(), 1e-6)
	assert.InDelta(t, -122.349358, line[2].Lon(), 1e-6)
	assert.InDelta(t, 47.620422, line[2].Lat(), 1e-6)
	assert.Empty(t, feature.Properties)
}

func TestDecodeGeometryIdempotent(t *testing.T) {
	s := Build(newLocalizer(t), sampleTrip())

	first, err := DecodeGeometry(s)
	require.NoError(t, err)
	second, err := DecodeGeometry(s)
	require.NoError(t, err)

	assert.Equal(t, first.Geometry, second.Geometry)
}

func TestDecodeGeometryEmptyShape(t *testing.T) {
	feature, err := DecodeGeometry(domain.RouteSummary{})
	require.NoError(t, err)

	line, ok := feature.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Empty(t, line)
}

func TestDecodeGeometryCorruptShape(t *testing.T) {
	_, err := DecodeGeometry(domain.RouteSummary{Shape: "_p~iF~ps|U_"})
	assert.Error(t, err)
}

func TestDecodeGeometryJSON(t *testing.T) {
	shape := encodeShape([][]float64{{1.5, 2.5}, {3.5, 4.5}})

	feature, err := DecodeGeometry(domain.RouteSummary{Shape: shape})
	require.NoError(t, err)

	data, err := json.Marshal(feature)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "Feature",
		"geometry": {"type": "LineString", "coordinates": [[2.5, 1.5], [4.5, 3.5]]},
		"properties": {}
	}`, string(data))
}
