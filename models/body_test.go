package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSolarSystemBodies(t *testing.T) {
	bodies := GetSolarSystemBodies()
	require.Len(t, bodies, 9)

	seen := make(map[string]bool)
	for _, b := range bodies {
		assert.False(t, seen[b.Name], "duplicate body %s", b.Name)
		seen[b.Name] = true
		assert.Positive(t, b.Radius, b.Name)
		assert.NotEmpty(t, b.Texture, b.Name)

		if b.IsSun() {
			assert.Zero(t, b.OrbitRadius)
			assert.Zero(t, b.RevolutionSpeed)
			assert.True(t, b.Unlit)
			assert.False(t, b.Revolves())
			continue
		}
		assert.True(t, b.Revolves(), b.Name)
		assert.False(t, b.Unlit, b.Name)
	}
}

func TestFindBody(t *testing.T) {
	bodies := GetSolarSystemBodies()

	b, ok := FindBody(bodies, " Earth ")
	require.True(t, ok)
	assert.Equal(t, 70.0, b.OrbitRadius)
	assert.Equal(t, "Earth", b.DisplayName())

	_, ok = FindBody(bodies, "pluto")
	assert.False(t, ok)
}
