package sdf

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/voxscene/voxelrt/rt/volume"
)

const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
)

// Distorter adjusts a sampled distance. It has the shape expected by SDF.Distort.
type Distorter func(distance float32, p mgl32.Vec3) float32

// PerlinDistort offsets distances by Perlin noise sampled at p*frequency.
func PerlinDistort(amplitude, frequency float32, seed int64) Distorter {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	return func(distance float32, p mgl32.Vec3) float32 {
		n := noise.Noise3D(float64(p[0]*frequency), float64(p[1]*frequency), float64(p[2]*frequency))
		return distance + float32(n)*amplitude
	}
}

// PerlinHeight is a terrain field whose surface is y = baseHeight + noise(x, z) * amplitude.
// It is not distance-correct away from the surface, which is fine for voxelizing.
func PerlinHeight(baseHeight, amplitude, frequency float32, seed int64) SDF {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	return func(p mgl32.Vec3) float32 {
		h := baseHeight + float32(noise.Noise2D(float64(p[0]*frequency), float64(p[2]*frequency)))*amplitude
		return p[1] - h
	}
}

// DensityClassifier maps a Perlin-noise density field onto a range of palette
// indices, producing cloud-like volumes. Cells outside the surface or with
// noise below threshold are empty.
func DensityClassifier(first, last uint8, threshold, frequency float32, seed int64) func(float32, mgl32.Vec3) uint8 {
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	span := float32(last) - float32(first)
	return func(distance float32, p mgl32.Vec3) uint8 {
		if distance >= 0 {
			return volume.Empty
		}
		n := float32(noise.Noise3D(float64(p[0]*frequency), float64(p[1]*frequency), float64(p[2]*frequency)))
		// Perlin output lies roughly in [-1, 1].
		v := (n + 1) * 0.5
		if v < threshold {
			return volume.Empty
		}
		if threshold >= 1 {
			return last
		}
		return first + uint8(span*min((v-threshold)/(1-threshold), 1))
	}
}
