package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/stage"
)

func newField(t *testing.T, blades int) (*grass.Field, *Device) {
	t.Helper()
	dev := &Device{}
	ctx := stage.NewContext(nil, nil, zaptest.NewLogger(t))
	opts := grass.DefaultOptions()
	opts.Rand = rand.New(rand.NewPCG(1, 2))
	f, err := grass.New(ctx, dev, grass.Config{Width: 4, Height: 2, NumBlades: blades, WindStrength: 5}, opts)
	require.NoError(t, err)
	return f, dev
}

func TestDeviceRecordsBothPasses(t *testing.T) {
	_, dev := newField(t, 12)

	require.Len(t, dev.Meshes, 2)
	assert.Equal(t, grass.MaterialFill, dev.Meshes[0].Material.Kind)
	assert.Equal(t, grass.MaterialOutline, dev.Meshes[1].Material.Kind)
	assert.Len(t, dev.Meshes[0].Instances, 12*grass.FloatsPerInstance)
}

func TestCollect(t *testing.T) {
	f, _ := newField(t, 100)

	s := Collect(f)
	assert.Equal(t, 100, s.Blades)
	assert.Equal(t, 15, s.VerticesPerBlade)
	assert.Equal(t, 13, s.TrianglesPerBlade)
	assert.Equal(t, 1300, s.Triangles)
	assert.Equal(t, 100*16*4, s.InstanceBytes)
	assert.True(t, s.Outline)
	assert.GreaterOrEqual(t, s.Min.X, float32(-2))
	assert.Less(t, s.Max.X, float32(2))
	assert.GreaterOrEqual(t, s.Min.Z, float32(-1))
	assert.Less(t, s.Max.Z, float32(1))
}

func TestWriteOBJ(t *testing.T) {
	f, _ := newField(t, 3)
	f.Tick(1.5)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, f))

	var verts, faces int
	maxIndex := 0
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			verts++
			assert.Len(t, strings.Fields(line), 7, "position and color")
		case strings.HasPrefix(line, "f "):
			faces++
			var a, b, c int
			_, err := fmt.Sscanf(line, "f %d %d %d", &a, &b, &c)
			require.NoError(t, err)
			maxIndex = max(maxIndex, a, b, c)
			assert.Positive(t, min(a, b, c))
		}
	}
	assert.Equal(t, 3*15, verts)
	assert.Equal(t, 3*13, faces)
	assert.Equal(t, verts, maxIndex, "faces reference every vertex range")
}

func TestWriteOBJIsPureInTime(t *testing.T) {
	f, _ := newField(t, 2)

	var a, b bytes.Buffer
	f.Tick(0.7)
	require.NoError(t, WriteOBJ(&a, f))
	f.Tick(3)
	f.Tick(0.7)
	require.NoError(t, WriteOBJ(&b, f))

	assert.Equal(t, a.String(), b.String())
}

func TestWriteOBJDisposed(t *testing.T) {
	f, _ := newField(t, 2)
	f.Dispose()

	assert.ErrorIs(t, WriteOBJ(&bytes.Buffer{}, f), grass.ErrDisposed)
}
