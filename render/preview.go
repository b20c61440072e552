package render

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/zomeworks/zome"
	"github.com/zomeworks/zome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig positions the preview camera.
type ViewConfig struct {
	// what position (point) to look at
	Lookat r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// camera position (point)
	Eyepos r3.Vec
	// near/far clipping planes
	Near, Far float64
}

// IsoView is a reasonable default isometric camera.
var IsoView = ViewConfig{
	Up:     r3.Vec{Z: 1},
	Eyepos: d3.Elem(2.4),
	Near:   1,
	Far:    10,
}

// SavePNG renders a shaded preview of the structure to a PNG file. The mesh
// is normalized to a bi-unit cube so any diameter frames the same.
func SavePNG(path string, s *zome.Structure, view ViewConfig) error {
	tris := Triangles(s)
	fglTris := make([]*fauxgl.Triangle, 0, len(tris))
	for _, t := range tris {
		if t.Degenerate(1e-12) {
			continue
		}
		fglTris = append(fglTris, fauxgl.NewTriangleForPoints(
			fauxgl.V(t[0].X, t[0].Y, t[0].Z),
			fauxgl.V(t[1].X, t[1].Y, t[1].Z),
			fauxgl.V(t[2].X, t[2].Y, t[2].Z),
		))
	}
	mesh := fauxgl.NewTriangleMesh(fglTris)

	const (
		width, height = 1920, 1080 // output width and height in pixels
		scale         = 2          // supersampling
		fovy          = 30         // vertical field of view in degrees
	)

	var (
		far    = view.Far
		near   = view.Near
		eye    = fauxgl.V(view.Eyepos.X, view.Eyepos.Y, view.Eyepos.Z) // camera position
		center = fauxgl.V(view.Lookat.X, view.Lookat.Y, view.Lookat.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color  = fauxgl.HexColor("#468966")                            // object color
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	// render
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}
