package sac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDelazSamePointIsZeroDistance(t *testing.T) {
	r := Delaz(0, 0, 0, 0)

	require.InDelta(t, 0, r.DistKM, 1e-6)
	require.InDelta(t, 0, r.GCArcDeg, 1e-6)
	require.InDelta(t, 0, r.Az, 1e-6)
}

func TestDelazQuarterGlobeAlongEquator(t *testing.T) {
	r := Delaz(0, 0, 0, 90)

	require.InDelta(t, 10007.1, r.DistKM, 0.1)
	require.InDelta(t, 90, r.GCArcDeg, 1e-6)
	require.InDelta(t, 90, r.Az, 1e-6)
	require.InDelta(t, 270, r.Baz, 1e-6)
}

func TestDelazAntipodalPointsDoNotProduceNaN(t *testing.T) {
	r := Delaz(0, 0, 0, 180)

	require.InDelta(t, 20014.2, r.DistKM, 0.1)
	require.InDelta(t, 180, r.GCArcDeg, 1e-6)
	require.False(t, isNaN(r.Az))
	require.False(t, isNaN(r.Baz))
}

func TestDelazArbitraryPair(t *testing.T) {
	r := Delaz(10, 20, 30, 40)

	require.InDelta(t, 3033.48, r.DistKM, 0.1)
	require.InDelta(t, 27.28, r.GCArcDeg, 0.01)
	require.InDelta(t, 40.34, r.Az, 0.01)
	require.InDelta(t, 227.31, r.Baz, 0.01)
}

func TestClamp(t *testing.T) {
	require.Equal(t, -1.0, clamp(-1.5, -1, 1))
	require.Equal(t, 1.0, clamp(1.5, -1, 1))
	require.Equal(t, 0.5, clamp(0.5, -1, 1))
}

func TestNormalizeDeg(t *testing.T) {
	require.Equal(t, 350.0, normalizeDeg(-10))
	require.Equal(t, 10.0, normalizeDeg(370))
	require.Equal(t, 180.0, normalizeDeg(180))
}

func isNaN(f float64) bool {
	return f != f
}
