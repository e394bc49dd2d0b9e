package render

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// StepTimeLayout is the layout of the FILE_NAME timestamp in STEP files.
const StepTimeLayout = "2006-01-02T15:04:05"

// ErrNoTimestamp is returned by StripStepTimestamp when the file has no
// FILE_NAME line carrying a timestamp.
var ErrNoTimestamp = errors.New("no STEP FILE_NAME timestamp found")

var stepTimestamp = regexp.MustCompile(`^FILE_NAME.*'(\d+-\d+-\d+T\d+:\d+:\d+)'`)

// StepOptions configures WriteSTEP.
type StepOptions struct {
	// Name is the product name and the FILE_NAME name field.
	Name string
	// Color is the surface color of the solid. A nil Color writes no style.
	Color color.Color
	// Time is written into FILE_NAME. The zero value uses the current time.
	Time time.Time
}

// WriteSTEP writes an indexed mesh as an ISO 10303-21 file with the AP214
// (automotive_design) schema. The solid is a faceted B-rep in millimetres
// with one planar face per mesh triangle.
func WriteSTEP(w io.Writer, m *Mesh, opts StepOptions) error {
	if len(m.Faces) == 0 {
		return errors.New("empty mesh")
	}
	ts := opts.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	sw := &stepWriter{w: bufio.NewWriter(w)}
	name := stepString(opts.Name)
	sw.printf("ISO-10303-21;\nHEADER;\n")
	sw.printf("FILE_DESCRIPTION(('someline model'),'2;1');\n")
	sw.printf("FILE_NAME(%s,'%s',(''),(''),'someline','someline','');\n", stepString(opts.Name+".step"), ts.Format(StepTimeLayout))
	sw.printf("FILE_SCHEMA(('AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }'));\n")
	sw.printf("ENDSEC;\nDATA;\n")

	appCtx := sw.entity("APPLICATION_CONTEXT('core data for automotive mechanical design processes')")
	sw.entity("APPLICATION_PROTOCOL_DEFINITION('international standard','automotive_design',2000,#%d)", appCtx)
	mm := sw.entity("( LENGTH_UNIT() NAMED_UNIT(*) SI_UNIT(.MILLI.,.METRE.) )")
	rad := sw.entity("( NAMED_UNIT(*) PLANE_ANGLE_UNIT() SI_UNIT($,.RADIAN.) )")
	sr := sw.entity("( NAMED_UNIT(*) SI_UNIT($,.STERADIAN.) SOLID_ANGLE_UNIT() )")
	unc := sw.entity("UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-07),#%d,'distance_accuracy_value','confusion accuracy')", mm)
	geomCtx := sw.entity("( GEOMETRIC_REPRESENTATION_CONTEXT(3) GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT((#%d)) GLOBAL_UNIT_ASSIGNED_CONTEXT((#%d,#%d,#%d)) REPRESENTATION_CONTEXT('Context #1','3D Context with UNIT and UNCERTAINTY') )", unc, mm, rad, sr)

	points := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		points[i] = sw.entity("CARTESIAN_POINT('',%s)", stepPoint(v))
	}
	faces := make([]int, 0, len(m.Faces))
	for _, f := range m.Faces {
		tri := Triangle3{V: [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}}
		n := tri.Normal()
		if n == (r3.Vec{}) {
			continue
		}
		ref := r3.Unit(r3.Sub(tri.V[1], tri.V[0]))
		axisDir := sw.entity("DIRECTION('',%s)", stepPoint(n))
		refDir := sw.entity("DIRECTION('',%s)", stepPoint(ref))
		axis := sw.entity("AXIS2_PLACEMENT_3D('',#%d,#%d,#%d)", points[f[0]], axisDir, refDir)
		plane := sw.entity("PLANE('',#%d)", axis)
		loop := sw.entity("POLY_LOOP('',(#%d,#%d,#%d))", points[f[0]], points[f[1]], points[f[2]])
		bound := sw.entity("FACE_OUTER_BOUND('',#%d,.T.)", loop)
		faces = append(faces, sw.entity("FACE_SURFACE('',(#%d),#%d,.T.)", bound, plane))
	}
	shell := sw.entity("CLOSED_SHELL('',(%s))", stepRefs(faces))
	brep := sw.entity("FACETED_BREP(%s,#%d)", name, shell)

	origin := sw.entity("CARTESIAN_POINT('',(0.,0.,0.))")
	zDir := sw.entity("DIRECTION('',(0.,0.,1.))")
	xDir := sw.entity("DIRECTION('',(1.,0.,0.))")
	placement := sw.entity("AXIS2_PLACEMENT_3D('',#%d,#%d,#%d)", origin, zDir, xDir)
	shapeRep := sw.entity("FACETED_BREP_SHAPE_REPRESENTATION(%s,(#%d,#%d),#%d)", name, placement, brep, geomCtx)

	prodCtx := sw.entity("PRODUCT_CONTEXT('',#%d,'mechanical')", appCtx)
	product := sw.entity("PRODUCT(%s,%s,'',(#%d))", name, name, prodCtx)
	sw.entity("PRODUCT_RELATED_PRODUCT_CATEGORY('part',$,(#%d))", product)
	formation := sw.entity("PRODUCT_DEFINITION_FORMATION('','',#%d)", product)
	defCtx := sw.entity("PRODUCT_DEFINITION_CONTEXT('part definition',#%d,'design')", appCtx)
	def := sw.entity("PRODUCT_DEFINITION('design','',#%d,#%d)", formation, defCtx)
	defShape := sw.entity("PRODUCT_DEFINITION_SHAPE('','',#%d)", def)
	sw.entity("SHAPE_DEFINITION_REPRESENTATION(#%d,#%d)", defShape, shapeRep)

	if opts.Color != nil {
		r, g, b, _ := opts.Color.RGBA()
		rgb := sw.entity("COLOUR_RGB('',%s,%s,%s)", stepReal(float64(r)/0xffff), stepReal(float64(g)/0xffff), stepReal(float64(b)/0xffff))
		fillColour := sw.entity("FILL_AREA_STYLE_COLOUR('',#%d)", rgb)
		fill := sw.entity("FILL_AREA_STYLE('',(#%d))", fillColour)
		fillArea := sw.entity("SURFACE_STYLE_FILL_AREA(#%d)", fill)
		side := sw.entity("SURFACE_SIDE_STYLE('',(#%d))", fillArea)
		usage := sw.entity("SURFACE_STYLE_USAGE(.BOTH.,#%d)", side)
		assign := sw.entity("PRESENTATION_STYLE_ASSIGNMENT((#%d))", usage)
		styled := sw.entity("STYLED_ITEM('color',(#%d),#%d)", assign, brep)
		sw.entity("MECHANICAL_DESIGN_GEOMETRIC_PRESENTATION_REPRESENTATION('',(#%d),#%d)", styled, geomCtx)
	}
	sw.printf("ENDSEC;\nEND-ISO-10303-21;\n")
	if sw.err != nil {
		return sw.err
	}
	return sw.w.Flush()
}

// CreateSTEP writes a STEP file of m at path.
func CreateSTEP(path string, m *Mesh, opts StepOptions) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err = WriteSTEP(fp, m, opts); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return fp.Close()
}

// StripStepTimestamp zeroes the timestamp of the first FILE_NAME line of the
// STEP file at path that carries one. The file is patched in place and keeps
// its length. Every digit of the timestamp becomes '0', so a standard
// timestamp reads 0000-00-00T00:00:00.
func StripStepTimestamp(path string) error {
	fp, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer fp.Close()
	offset, ts, err := findStepTimestamp(fp)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for i, c := range ts {
		if c >= '0' && c <= '9' {
			ts[i] = '0'
		}
	}
	if _, err = fp.WriteAt(ts, offset); err != nil {
		return err
	}
	return fp.Close()
}

// findStepTimestamp returns the file offset and bytes of the first FILE_NAME
// timestamp in r.
func findStepTimestamp(r io.Reader) (int64, []byte, error) {
	br := bufio.NewReader(r)
	var offset int64
	for {
		line, err := br.ReadBytes('\n')
		if bytes.HasPrefix(line, []byte("FILE_NAME")) {
			if loc := stepTimestamp.FindSubmatchIndex(line); loc != nil {
				ts := append([]byte(nil), line[loc[2]:loc[3]]...)
				return offset + int64(loc[2]), ts, nil
			}
		}
		offset += int64(len(line))
		if err == io.EOF {
			return 0, nil, ErrNoTimestamp
		}
		if err != nil {
			return 0, nil, err
		}
	}
}

// stepWriter numbers and writes DATA section entities.
type stepWriter struct {
	w   *bufio.Writer
	id  int
	err error
}

func (sw *stepWriter) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

// entity writes a new instance and returns its id.
func (sw *stepWriter) entity(format string, args ...any) int {
	sw.id++
	sw.printf("#%d = ", sw.id)
	sw.printf(format, args...)
	sw.printf(";\n")
	return sw.id
}

func stepRefs(ids []int) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

func stepPoint(v r3.Vec) string {
	return "(" + stepReal(v.X) + "," + stepReal(v.Y) + "," + stepReal(v.Z) + ")"
}

// stepReal formats a REAL. Part 21 requires a decimal point in every real.
func stepReal(f float64) string {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return "0."
	}
	s := strconv.FormatFloat(f, 'G', -1, 64)
	mant, exp, hasExp := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += "."
	}
	if hasExp {
		return mant + "E" + exp
	}
	return mant
}

// stepString quotes s as a Part 21 string literal.
func stepString(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\'':
			sb.WriteString("''")
		case r == '\\':
			sb.WriteString(`\\`)
		case r < 0x20 || r > 0x7e:
			if r > 0xffff {
				r = '?'
			}
			fmt.Fprintf(&sb, `\X2\%04X\X0\`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
