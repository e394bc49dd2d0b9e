package render_test

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/someline/someline/form3"
	"github.com/someline/someline/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func boxMesh(t testing.TB) *render.Mesh {
	t.Helper()
	box, err := form3.Box(r3.Vec{X: 4, Y: 3, Z: 2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(render.NewOctreeRenderer(box, 12))
	if err != nil {
		t.Fatal(err)
	}
	return render.NewMesh(model, 1e-9)
}

func TestWriteSTEP(t *testing.T) {
	m := boxMesh(t)
	opts := render.StepOptions{
		Name:  "U1",
		Color: color.RGBA{R: 0xff, G: 0x6a, B: 0x13, A: 0xff},
		Time:  time.Date(2024, 3, 9, 17, 4, 5, 0, time.UTC),
	}
	var a, b bytes.Buffer
	if err := render.WriteSTEP(&a, m, opts); err != nil {
		t.Fatal(err)
	}
	if err := render.WriteSTEP(&b, m, opts); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("STEP output is not deterministic")
	}
	out := a.String()
	for _, want := range []string{
		"ISO-10303-21;",
		"FILE_NAME('U1.step','2024-03-09T17:04:05',",
		"AUTOMOTIVE_DESIGN",
		"SI_UNIT(.MILLI.,.METRE.)",
		"CLOSED_SHELL(",
		"FACETED_BREP('U1',",
		"PRODUCT('U1','U1',",
		"COLOUR_RGB('',1.,0.41",
		"END-ISO-10303-21;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("STEP output missing %q", want)
		}
	}
	if got, want := strings.Count(out, "FACE_SURFACE("), len(m.Faces); got != want {
		t.Errorf("got %d faces, want %d", got, want)
	}
	if got, want := strings.Count(out, "CARTESIAN_POINT("), len(m.Vertices)+1; got != want {
		t.Errorf("got %d points, want %d", got, want)
	}

	var plain bytes.Buffer
	opts.Color = nil
	if err := render.WriteSTEP(&plain, m, opts); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "COLOUR_RGB") {
		t.Error("uncolored STEP carries a color")
	}
	if err := render.WriteSTEP(&plain, &render.Mesh{}, opts); err == nil {
		t.Error("expected error on empty mesh")
	}
}

func TestStripStepTimestamp(t *testing.T) {
	dir := t.TempDir()
	m := boxMesh(t)
	write := func(name string, ts time.Time) string {
		path := filepath.Join(dir, name+".step")
		err := render.CreateSTEP(path, m, render.StepOptions{Name: "part", Time: ts})
		if err != nil {
			t.Fatal(err)
		}
		return path
	}
	p1 := write("a", time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC))
	p2 := write("b", time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))
	before, _ := os.ReadFile(p1)
	for _, p := range []string{p1, p2} {
		if err := render.StripStepTimestamp(p); err != nil {
			t.Fatal(err)
		}
	}
	b1, _ := os.ReadFile(p1)
	b2, _ := os.ReadFile(p2)
	if !bytes.Equal(b1, b2) {
		t.Error("stripped STEP files differ")
	}
	if len(b1) != len(before) {
		t.Errorf("file length changed from %d to %d", len(before), len(b1))
	}
	if !bytes.Contains(b1, []byte("'0000-00-00T00:00:00'")) {
		t.Error("timestamp not zeroed")
	}
	// Only the timestamp bytes changed.
	diff := 0
	for i := range b1 {
		if b1[i] != before[i] {
			diff++
		}
	}
	if diff == 0 || diff > len(render.StepTimeLayout) {
		t.Errorf("%d bytes changed", diff)
	}
}

func TestStripStepTimestampMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.step")
	content := "ISO-10303-21;\nHEADER;\nFILE_NAME('x','',(''),(''),'','','');\nENDSEC;\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	err := render.StripStepTimestamp(path)
	if !errors.Is(err, render.ErrNoTimestamp) {
		t.Fatalf("got %v, want ErrNoTimestamp", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != content {
		t.Error("file modified without a timestamp")
	}
	if err := render.StripStepTimestamp(filepath.Join(t.TempDir(), "missing.step")); err == nil {
		t.Error("expected error for a missing file")
	}
}
