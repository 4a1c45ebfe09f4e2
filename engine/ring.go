package engine

import (
	"fmt"
	"math"
)

// Geometry is an indexed triangle mesh in flat arrays: three floats per
// vertex and normal, two per texture coordinate.
type Geometry struct {
	Vertex   []float32
	Normal   []float32
	TexCoord []float32
	Index    []uint32
}

// NumVertex returns the number of vertices.
func (g *Geometry) NumVertex() int {
	return len(g.Vertex) / 3
}

// RingGeometry builds a flat annulus centered at the origin in the XY plane,
// facing +Z. It has segments+1 vertices on each edge so the texture seam
// closes.
func RingGeometry(inner, outer float64, segments int) (*Geometry, error) {
	if inner < 0 || outer <= inner {
		return nil, fmt.Errorf("ring radii must satisfy 0 <= inner < outer, got %g, %g", inner, outer)
	}
	if segments < 3 {
		return nil, fmt.Errorf("ring needs at least 3 segments, got %d", segments)
	}

	n := segments + 1
	g := &Geometry{
		Vertex:   make([]float32, 0, 2*n*3),
		Normal:   make([]float32, 0, 2*n*3),
		TexCoord: make([]float32, 0, 2*n*2),
		Index:    make([]uint32, 0, segments*6),
	}
	for _, r := range []float64{inner, outer} {
		for i := 0; i < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			x, y := r*math.Cos(theta), r*math.Sin(theta)
			g.Vertex = append(g.Vertex, float32(x), float32(y), 0)
			g.Normal = append(g.Normal, 0, 0, 1)
			g.TexCoord = append(g.TexCoord, float32((x/outer+1)/2), float32((y/outer+1)/2))
		}
	}

	o := uint32(n)
	for i := uint32(0); i < uint32(segments); i++ {
		a, b := i, i+1     // inner edge
		c, d := o+i+1, o+i // outer edge
		g.Index = append(g.Index, a, d, c, a, c, b)
	}
	return g, nil
}
