package core

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"
)

type TextureFormat uint32

const (
	TextureFormatR8Uint         TextureFormat = 0x00000003
	TextureFormatR32Float       TextureFormat = 0x0000000C
	TextureFormatRGBA8Unorm     TextureFormat = 0x00000012
	TextureFormatRGBA8UnormSrgb TextureFormat = 0x00000013
	TextureFormatRGBA32Float    TextureFormat = 0x00000023
	TextureFormatR16Unorm       TextureFormat = 0x00030001
	TextureFormatRGBA16Unorm    TextureFormat = 0x00030005
)

func (f TextureFormat) BytesPerTexel() int {
	switch f {
	case TextureFormatR8Uint:
		return 1
	case TextureFormatR16Unorm:
		return 2
	case TextureFormatR32Float, TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSrgb:
		return 4
	case TextureFormatRGBA16Unorm:
		return 8
	case TextureFormatRGBA32Float:
		return 16
	}
	return 0
}

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR8Uint:
		return "r8uint"
	case TextureFormatR16Unorm:
		return "r16unorm"
	case TextureFormatR32Float:
		return "r32float"
	case TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case TextureFormatRGBA8UnormSrgb:
		return "rgba8unorm-srgb"
	case TextureFormatRGBA16Unorm:
		return "rgba16unorm"
	case TextureFormatRGBA32Float:
		return "rgba32float"
	}
	return fmt.Sprintf("TextureFormat(%#x)", uint32(f))
}

// Texture is a CPU-side image, 2D when Depth is 1. Multi-byte texels are little endian.
type Texture struct {
	Label  string
	Width  uint32
	Height uint32
	Depth  uint32
	Format TextureFormat
	Texels []byte
}

func NewTexture(label string, width, height, depth uint32, format TextureFormat, texels []byte) *Texture {
	want := int(width*height*depth) * format.BytesPerTexel()
	if len(texels) != want {
		panic(fmt.Sprintf("texture %q: got %d bytes, want %d for %dx%dx%d %s", label, len(texels), want, width, height, depth, format))
	}
	return &Texture{
		Label:  label,
		Width:  width,
		Height: height,
		Depth:  depth,
		Format: format,
		Texels: texels,
	}
}

func (t *Texture) texelOffset(x, y, z int) int {
	return ((z*int(t.Height)+y)*int(t.Width) + x) * t.Format.BytesPerTexel()
}

// Float32s decodes a float texture.
func (t *Texture) Float32s() []float32 {
	if t.Format != TextureFormatR32Float && t.Format != TextureFormatRGBA32Float {
		return nil
	}
	out := make([]float32, len(t.Texels)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(t.Texels[i*4:]))
	}
	return out
}

// Uint16s decodes a 16-bit normalized texture.
func (t *Texture) Uint16s() []uint16 {
	if t.Format != TextureFormatR16Unorm && t.Format != TextureFormatRGBA16Unorm {
		return nil
	}
	out := make([]uint16, len(t.Texels)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(t.Texels[i*2:])
	}
	return out
}

// Image converts one depth layer into an image.Image for previews and export.
// Float channels are clamped to [0, 1].
func (t *Texture) Image(layer int) (image.Image, error) {
	if layer < 0 || layer >= int(t.Depth) {
		return nil, fmt.Errorf("texture %q: layer %d out of range [0, %d)", t.Label, layer, t.Depth)
	}
	w, h := int(t.Width), int(t.Height)
	rect := image.Rect(0, 0, w, h)

	switch t.Format {
	case TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSrgb:
		img := image.NewNRGBA(rect)
		start := t.texelOffset(0, 0, layer)
		copy(img.Pix, t.Texels[start:start+w*h*4])
		return img, nil
	case TextureFormatR8Uint:
		img := image.NewGray(rect)
		start := t.texelOffset(0, 0, layer)
		copy(img.Pix, t.Texels[start:start+w*h])
		return img, nil
	case TextureFormatR16Unorm:
		img := image.NewGray16(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := binary.LittleEndian.Uint16(t.Texels[t.texelOffset(x, y, layer):])
				img.SetGray16(x, y, color.Gray16{Y: v})
			}
		}
		return img, nil
	case TextureFormatRGBA16Unorm:
		img := image.NewNRGBA64(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := t.texelOffset(x, y, layer)
				img.SetNRGBA64(x, y, color.NRGBA64{
					R: binary.LittleEndian.Uint16(t.Texels[o:]),
					G: binary.LittleEndian.Uint16(t.Texels[o+2:]),
					B: binary.LittleEndian.Uint16(t.Texels[o+4:]),
					A: 0xffff,
				})
			}
		}
		return img, nil
	case TextureFormatR32Float:
		img := image.NewGray(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := math.Float32frombits(binary.LittleEndian.Uint32(t.Texels[t.texelOffset(x, y, layer):]))
				img.SetGray(x, y, color.Gray{Y: unitToByte(v)})
			}
		}
		return img, nil
	case TextureFormatRGBA32Float:
		img := image.NewNRGBA(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := t.texelOffset(x, y, layer)
				var c [4]uint8
				for i := range c {
					c[i] = unitToByte(math.Float32frombits(binary.LittleEndian.Uint32(t.Texels[o+i*4:])))
				}
				img.SetNRGBA(x, y, color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xff})
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("texture %q: no image conversion for %s", t.Label, t.Format)
}

func unitToByte(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
