package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a model in the world. The model's local origin is its center.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Dirty    bool
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Dirty:    true,
	}
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t *Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())
	// Conjugate is the inverse for a unit quaternion
	invRotate := t.Rotation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// ToLocal maps a world-space point into the model's local space.
func (t *Transform) ToLocal(world mgl32.Vec3) mgl32.Vec3 {
	return t.WorldToObject().Mul4x1(world.Vec4(1.0)).Vec3()
}

// ToLocalDir maps a world-space direction into local space, ignoring translation.
func (t *Transform) ToLocalDir(dir mgl32.Vec3) mgl32.Vec3 {
	return t.WorldToObject().Mul4x1(dir.Vec4(0.0)).Vec3()
}

func (t *Transform) ToWorld(local mgl32.Vec3) mgl32.Vec3 {
	return t.ObjectToWorld().Mul4x1(local.Vec4(1.0)).Vec3()
}
