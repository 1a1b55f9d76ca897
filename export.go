package voxscene

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/gekko3d/voxscene/voxelrt/rt/core"
	"github.com/gekko3d/voxscene/voxelrt/rt/model"
)

// WriteOBJ writes a mesh as Wavefront OBJ. mtl, when set, is referenced with
// mtllib and applied to every face.
func WriteOBJ(w io.Writer, name, mtl string, m *core.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	if mtl != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtl)
	}
	fmt.Fprintf(bw, "o %s\n", name)
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, uv := range m.UVs {
		// OBJ texture space has v pointing up.
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], 1-uv[1])
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	if mtl != "" {
		fmt.Fprintf(bw, "usemtl %s\n", name)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// WriteMTL describes mat with the PBR extension keys. textures maps a texture
// to the file name it was written under.
func WriteMTL(w io.Writer, name string, mat *core.Material, textures map[*core.Texture]string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "newmtl %s\n", name)
	c := mat.BaseColor
	fmt.Fprintf(bw, "Kd %g %g %g\n", c[0], c[1], c[2])
	e := mat.Emissive
	fmt.Fprintf(bw, "Ke %g %g %g\n", e[0], e[1], e[2])
	fmt.Fprintf(bw, "Pr %g\nPm %g\n", mat.Roughness, mat.Metalness)
	fmt.Fprintf(bw, "Ni %g\nd %g\n", mat.IOR, 1-mat.Transparency)

	maps := []struct {
		key string
		tex *core.Texture
	}{
		{"map_Kd", mat.BaseColorTexture},
		{"map_Ke", mat.EmissiveTexture},
		{"map_Pr", mat.MetallicRoughnessTexture},
		{"map_Tf", mat.TransparencyTexture},
	}
	for _, m := range maps {
		if file, ok := textures[m.tex]; ok && m.tex != nil {
			fmt.Fprintf(bw, "%s %s\n", m.key, file)
		}
	}
	return bw.Flush()
}

// ScaleImage enlarges img by an integer factor with nearest-neighbor sampling,
// so every atlas cell stays a flat color.
func ScaleImage(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes one layer of t, enlarged by scale.
func WritePNG(w io.Writer, t *core.Texture, layer, scale int) error {
	img, err := t.Image(layer)
	if err != nil {
		return err
	}
	return png.Encode(w, ScaleImage(img, scale))
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ExportModel writes the model's mesh, material and textures into dir and
// returns the written paths. A model without a surface gets no OBJ; a density
// volume is previewed through its middle layer.
func ExportModel(dir, name string, m *model.Model, scale int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	var written []string

	textures := make(map[*core.Texture]string)
	if m.Material != nil {
		for _, t := range m.Material.Textures() {
			file := fmt.Sprintf("%s_%s.png", name, t.Label)
			path := filepath.Join(dir, file)
			if err := writeFile(path, func(w io.Writer) error { return WritePNG(w, t, 0, scale) }); err != nil {
				return written, err
			}
			textures[t] = file
			written = append(written, path)
		}
	}

	if m.Mesh != nil {
		mtl := name + ".mtl"
		if m.Material != nil {
			path := filepath.Join(dir, mtl)
			if err := writeFile(path, func(w io.Writer) error { return WriteMTL(w, name, m.Material, textures) }); err != nil {
				return written, err
			}
			written = append(written, path)
		} else {
			mtl = ""
		}
		path := filepath.Join(dir, name+".obj")
		if err := writeFile(path, func(w io.Writer) error { return WriteOBJ(w, name, mtl, m.Mesh) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if m.Density != nil {
		path := filepath.Join(dir, name+"_density.png")
		layer := int(m.Density.Depth) / 2
		if err := writeFile(path, func(w io.Writer) error { return WritePNG(w, m.Density, layer, scale) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
