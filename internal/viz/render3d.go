package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/sixdof/internal/dynamo"
)

// Camera projects body-centred world points onto the canvas. Rotation is
// applied as successive turns about x, y and z.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	// Look down at the x-y plane from slightly above, z up the screen.
	return &Camera{Distance: 6, Near: 0.1, RotX: -math.Pi / 2.5, RotZ: -math.Pi / 6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// View is the camera rotation applied to world points.
func (c *Camera) View() mgl64.Quat {
	qx := mgl64.QuatRotate(c.RotX, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(c.RotY, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(c.RotZ, mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz)
}

// Project maps p to sub-pixel coordinates on a sw×sh surface. It returns the
// depth and whether the point lands in front of the camera and on screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	return c.project(c.View(), p, sw, sh)
}

func (c *Camera) project(view mgl64.Quat, p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := view.Rotate(p).Mul(c.Zoom)
	if rot[2] >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot[2])
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	sx := int(rot[0]*scale*pScale) + sw/2
	sy := int(-rot[1]*scale*pScale) + sh/2
	return sx, sy, rot[2], sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }

// Transformed returns the wireframe rotated by q.
func (w *Wireframe) Transformed(q mgl64.Quat) *Wireframe {
	out := &Wireframe{Edges: make([]Edge, len(w.Edges))}
	for i, e := range w.Edges {
		out.Edges[i] = Edge{q.Rotate(e.Start), q.Rotate(e.End)}
	}
	return out
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()
	view := cam.View()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.project(view, e.Start, sw, sh)
		x2, y2, d2, v2 := cam.project(view, e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// BoxWireframe is an x×y×z cuboid centred on the origin.
func BoxWireframe(x, y, z float64) *Wireframe {
	w := NewWireframe()
	hx, hy, hz := x/2, y/2, z/2
	v := []mgl64.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

// EquivalentBox returns the edge lengths of the uniform box with the same
// principal moments as m. Off-diagonal terms are ignored.
func EquivalentBox(m dynamo.InertiaMass) mgl64.Vec3 {
	ix, iy, iz := m.Inertia.At(0, 0), m.Inertia.At(1, 1), m.Inertia.At(2, 2)
	edge := func(a, b, c float64) float64 {
		return math.Sqrt(math.Max(0, 6*(a+b-c)/m.Mass))
	}
	return mgl64.Vec3{edge(iy, iz, ix), edge(ix, iz, iy), edge(ix, iy, iz)}
}

// BodyWireframe draws s in body frame: its equivalent box, the body axes and
// one tick per panel along its normal, scaled so the longest box edge is 2.
// Rotate the result by the body orientation before rendering.
func BodyWireframe(s *dynamo.State) *Wireframe {
	dims := EquivalentBox(s.Mass)
	longest := math.Max(dims[0], math.Max(dims[1], dims[2]))
	scale := 1.0
	if longest > 0 {
		scale = 2 / longest
	}

	w := BoxWireframe(dims[0]*scale, dims[1]*scale, dims[2]*scale)
	for i := 0; i < 3; i++ {
		var axis mgl64.Vec3
		axis[i] = 1.5
		w.AddEdge(mgl64.Vec3{}, axis)
	}
	for _, p := range s.Panels {
		at := p.Offset.Mul(scale)
		w.AddEdge(at, at.Add(p.Normal.Mul(0.5)))
	}
	return w
}
