// Package sdf composes signed distance fields and samples them into voxel grids.
package sdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SDF returns the signed distance from a point to a surface: negative inside,
// positive outside.
type SDF func(p mgl32.Vec3) float32

// Distance evaluates the field at p.
func (s SDF) Distance(p mgl32.Vec3) float32 {
	return s(p)
}

func Sphere(radius float32) SDF {
	return func(p mgl32.Vec3) float32 {
		return p.Len() - radius
	}
}

// Cuboid is an axis-aligned box centered on the origin.
func Cuboid(halfExtent mgl32.Vec3) SDF {
	return func(p mgl32.Vec3) float32 {
		q := mgl32.Vec3{
			math32.Abs(p[0]) - halfExtent[0],
			math32.Abs(p[1]) - halfExtent[1],
			math32.Abs(p[2]) - halfExtent[2],
		}
		outside := mgl32.Vec3{math32.Max(q[0], 0), math32.Max(q[1], 0), math32.Max(q[2], 0)}
		return outside.Len() + math32.Min(math32.Max(q[0], math32.Max(q[1], q[2])), 0)
	}
}

// Cylinder is aligned with the Y axis.
func Cylinder(radius, halfHeight float32) SDF {
	return func(p mgl32.Vec3) float32 {
		dx := math32.Hypot(p[0], p[2]) - radius
		dy := math32.Abs(p[1]) - halfHeight
		outside := math32.Hypot(math32.Max(dx, 0), math32.Max(dy, 0))
		return outside + math32.Min(math32.Max(dx, dy), 0)
	}
}

// Cone stands on the Y axis with its base at y = -height/2 and apex at +height/2.
// The distance is a bound, exact only on the mantle.
func Cone(radius, height float32) SDF {
	slant := math32.Hypot(radius, height)
	return func(p mgl32.Vec3) float32 {
		r := radius * (0.5 - p[1]/height)
		side := (math32.Hypot(p[0], p[2]) - r) * height / slant
		return math32.Max(side, math32.Abs(p[1])-height/2)
	}
}

// Torus lies in the XZ plane.
func Torus(major, minor float32) SDF {
	return func(p mgl32.Vec3) float32 {
		ring := math32.Hypot(p[0], p[2]) - major
		return math32.Hypot(ring, p[1]) - minor
	}
}

// Add is the union of two fields.
func (s SDF) Add(other SDF) SDF {
	return func(p mgl32.Vec3) float32 {
		return math32.Min(s(p), other(p))
	}
}

// Subtract carves other out of s.
func (s SDF) Subtract(other SDF) SDF {
	return func(p mgl32.Vec3) float32 {
		return math32.Max(s(p), -other(p))
	}
}

func (s SDF) Intersect(other SDF) SDF {
	return func(p mgl32.Vec3) float32 {
		return math32.Max(s(p), other(p))
	}
}

// Negate swaps inside and outside.
func (s SDF) Negate() SDF {
	return func(p mgl32.Vec3) float32 {
		return -s(p)
	}
}

// Translate offsets the input point by delta before evaluating, so the shape
// itself moves by -delta.
func (s SDF) Translate(delta mgl32.Vec3) SDF {
	return func(p mgl32.Vec3) float32 {
		return s(p.Add(delta))
	}
}

// Rotate turns the shape by q.
func (s SDF) Rotate(q mgl32.Quat) SDF {
	inverse := q.Inverse()
	return func(p mgl32.Vec3) float32 {
		return s(inverse.Rotate(p))
	}
}

// Scale resizes the shape uniformly, keeping distances correct.
func (s SDF) Scale(factor float32) SDF {
	return func(p mgl32.Vec3) float32 {
		return s(p.Mul(1/factor)) * factor
	}
}

// Warp remaps the input point before evaluating.
func (s SDF) Warp(warp func(mgl32.Vec3) mgl32.Vec3) SDF {
	return func(p mgl32.Vec3) float32 {
		return s(warp(p))
	}
}

// Distort post-processes the distance, given the distance and the sample point.
func (s SDF) Distort(distort func(distance float32, p mgl32.Vec3) float32) SDF {
	return func(p mgl32.Vec3) float32 {
		return distort(s(p), p)
	}
}
