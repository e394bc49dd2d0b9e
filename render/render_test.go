package render_test

import (
	"os"
	"path/filepath"
	"testing"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	"github.com/someline/someline/form3"
	"github.com/someline/someline/render"
	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const benchQuality = 120

func BenchmarkSDFXBox(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_box.stl")
	outer, _ := sdfxsdf.Box3D(sdfxsdf.V3{X: 60, Y: 30, Z: 20}, 3)
	inner, _ := sdfxsdf.Box3D(sdfxsdf.V3{X: 57, Y: 27, Z: 20}, 2)
	inner = sdfxsdf.Transform3D(inner, sdfxsdf.Translate3d(sdfxsdf.V3{Z: 1}))
	object := sdfxsdf.Difference3D(outer, inner)
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}

func BenchmarkBox(b *testing.B) {
	output := filepath.Join(b.TempDir(), "our_box.stl")
	outer, _ := form3.Box(r3.Vec{X: 60, Y: 30, Z: 20}, 3)
	inner, _ := form3.Box(r3.Vec{X: 57, Y: 27, Z: 20}, 2)
	inner = sdf.Transform3D(inner, sdf.Translate3D(r3.Vec{Z: 1}))
	object := sdf.Difference3D(outer, inner)
	for i := 0; i < b.N; i++ {
		if err := render.CreateSTL(output, render.NewOctreeRenderer(object, benchQuality)); err != nil {
			b.Fatal(err)
		}
	}
}
