package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionClamped(t *testing.T) {
	extent := [3]int{4, 4, 4}

	tests := []struct {
		name string
		mode RegionMode
		want Region
	}{
		{"all", All(), Region{Size: extent}},
		{"inside", Box(Region{Origin: [3]int{1, 1, 1}, Size: [3]int{2, 2, 2}}), Region{Origin: [3]int{1, 1, 1}, Size: [3]int{2, 2, 2}}},
		{"single cell", Box(Region{Origin: [3]int{2, 2, 2}, Size: [3]int{1, 1, 1}}), Region{Origin: [3]int{2, 2, 2}, Size: [3]int{1, 1, 1}}},
		{"negative origin", Box(Region{Origin: [3]int{-3, -3, -3}, Size: [3]int{2, 2, 2}}), Region{Origin: [3]int{0, 0, 0}, Size: [3]int{2, 2, 2}}},
		{"overhanging", Box(Region{Origin: [3]int{3, 3, 3}, Size: [3]int{5, 5, 5}}), Region{Origin: [3]int{3, 3, 3}, Size: [3]int{1, 1, 1}}},
		{"entirely outside", Box(Region{Origin: [3]int{10, 10, 10}, Size: [3]int{2, 2, 2}}), Region{Origin: [3]int{3, 3, 3}, Size: [3]int{1, 1, 1}}},
		{"zero size", Box(Region{Origin: [3]int{1, 1, 1}}), Region{Origin: [3]int{1, 1, 1}, Size: [3]int{1, 1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Clamped(extent))
		})
	}
}

func TestRegionClampedDegenerateExtent(t *testing.T) {
	r := All().Clamped([3]int{0, 3, 3})
	assert.Equal(t, 0, r.Volume())
}

func TestBoxAround(t *testing.T) {
	r := BoxAround([3]int{5, 5, 5}, 2).Clamped([3]int{16, 16, 16})
	assert.Equal(t, [3]int{3, 3, 3}, r.Origin)
	assert.Equal(t, [3]int{5, 5, 5}, r.Size)
	assert.Equal(t, [3]int{8, 8, 8}, r.End())
	assert.InDelta(t, 5.5, r.Center().X(), 1e-6)
}
