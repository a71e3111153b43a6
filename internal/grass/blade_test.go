package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBladeCounts(t *testing.T) {
	for _, n := range []int{5, 7, 9, 15, 31} {
		blade, err := BuildBlade(n, 1, 0.1)
		require.NoError(t, err)

		assert.Equal(t, n, blade.VertexCount(), "n=%d", n)
		assert.Len(t, blade.Indices, 3*(n-2), "n=%d", n)
		for _, idx := range blade.Indices {
			assert.Less(t, int(idx), n, "n=%d", n)
		}
	}
}

func TestBuildBladeReferencesEveryVertex(t *testing.T) {
	blade, err := BuildBlade(15, 1, 0.1)
	require.NoError(t, err)

	used := make(map[uint16]bool)
	for _, idx := range blade.Indices {
		used[idx] = true
	}
	assert.Len(t, used, 15)
}

func TestBuildBladeEvenCountSkipsDegenerate(t *testing.T) {
	for _, n := range []int{4, 6, 14} {
		blade, err := BuildBlade(n, 1, 0.1)
		require.NoError(t, err)
		require.Len(t, blade.Indices, 3*(n-2), "n=%d", n)

		for tri := 0; tri < blade.TriangleCount(); tri++ {
			a, b, c := blade.Indices[tri*3], blade.Indices[tri*3+1], blade.Indices[tri*3+2]
			assert.True(t, a != b && b != c && a != c, "n=%d degenerate triangle %d: %d %d %d", n, tri, a, b, c)
		}
	}
}

func TestBuildBladeWindingIsConsistent(t *testing.T) {
	blade, err := BuildBlade(15, 1, 0.1)
	require.NoError(t, err)

	for tri := 0; tri < blade.TriangleCount(); tri++ {
		a := blade.Vertex(int(blade.Indices[tri*3]))
		b := blade.Vertex(int(blade.Indices[tri*3+1]))
		c := blade.Vertex(int(blade.Indices[tri*3+2]))

		// Z of (b-a) x (c-a); the blade lies in the XY plane.
		cross := b.Sub(a).Cross(c.Sub(a)).Z
		assert.Less(t, cross, float32(0), "triangle %d winds the other way", tri)
	}
}

func TestBuildBladeProfile(t *testing.T) {
	const n = 15
	blade, err := BuildBlade(n, 2, 0.1)
	require.NoError(t, err)

	root := blade.Vertex(0)
	tip := blade.Vertex(n / 2)
	last := blade.Vertex(n - 1)

	assert.Equal(t, float32(0), root.X)
	assert.Equal(t, float32(0), root.Y)
	assert.InDelta(t, 1, tip.Y, 1e-6, "middle vertex is the tip")
	assert.Equal(t, float32(0), last.Y)
	assert.InDelta(t, 0.05, last.X, 1e-6, "slim scale narrows the blade")
	assert.InDelta(t, blade.Center(), tip.X, 1e-6)

	for i := 0; i < n; i++ {
		v := blade.Vertex(i)
		assert.Equal(t, float32(0), v.Z)
		mirror := blade.Vertex(n - 1 - i)
		assert.InDelta(t, v.Y, mirror.Y, 1e-6, "vertex %d mirrors %d", i, n-1-i)
	}
}

func TestBuildBladeRejectsBadInput(t *testing.T) {
	_, err := BuildBlade(2, 1, 0.1)
	assert.Error(t, err)
	_, err = BuildBlade(15, 0, 0.1)
	assert.Error(t, err)
	_, err = BuildBlade(15, 1, -1)
	assert.Error(t, err)
}
