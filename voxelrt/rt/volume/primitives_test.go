package volume

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFillSphereClips(t *testing.T) {
	g := NewGrid([3]int{4, 4, 4}, DefaultGridOptions())
	written := FillSphere(g, mgl32.Vec3{0, 0, 0}, 2, 3)
	if written == 0 {
		t.Fatal("Expected some voxels to be written")
	}
	if written != g.Count() {
		t.Errorf("Written count %d should match grid count %d", written, g.Count())
	}
	if v, _ := g.Get([3]int{0, 0, 0}); v != 3 {
		t.Errorf("Corner voxel should be filled, got %d", v)
	}
	if v, _ := g.Get([3]int{3, 3, 3}); v != Empty {
		t.Errorf("Far corner should be empty, got %d", v)
	}
}

func TestFillBox(t *testing.T) {
	g := NewGrid([3]int{4, 4, 4}, DefaultGridOptions())
	if n := FillBox(g, [3]int{-2, 1, 1}, [3]int{1, 2, 2}, 2); n != 8 {
		t.Errorf("Expected 8 voxels, got %d", n)
	}
}

func TestFillConeAndPyramid(t *testing.T) {
	g := NewGrid([3]int{9, 9, 9}, DefaultGridOptions())
	cone := FillCone(g, mgl32.Vec3{4.5, 0, 4.5}, mgl32.Vec3{4.5, 9, 4.5}, 4, 1)
	if cone == 0 {
		t.Fatal("Cone should fill some voxels")
	}
	if v, _ := g.Get([3]int{4, 0, 4}); v != 1 {
		t.Error("Cone base center should be filled")
	}

	p := NewGrid([3]int{9, 9, 9}, DefaultGridOptions())
	pyr := FillPyramid(p, mgl32.Vec3{4.5, 0, 4.5}, mgl32.Vec3{4.5, 9, 4.5}, 8, 1)
	if pyr <= cone {
		t.Errorf("Pyramid (%d) should contain more voxels than the inscribed cone (%d)", pyr, cone)
	}
	if n := FillCone(g, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, 4, 1); n != 0 {
		t.Error("Zero-height cone should write nothing")
	}
}
