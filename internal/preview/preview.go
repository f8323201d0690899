// Package preview draws a generated structure into a grayscale density image.
// Points are sampled along each drawable node's length axis and projected
// onto a vertical plane; brighter pixels received more samples.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/scene"
)

const (
	defaultSamples = 64
	margin         = 1.1
)

// Canvas accumulates sample counts per pixel. It implements scene.Renderer.
type Canvas struct {
	width, height int
	counts        []int

	// Center and HalfHeight frame the view in projected world units.
	Center     geometry.XY
	HalfHeight float64
	// Yaw turns the structure about the vertical axis before projecting, in
	// radians.
	Yaw float64
	// Samples is the number of points drawn per node.
	Samples int

	// Clipped counts samples that fell outside the frame.
	Clipped int
}

// New creates a blank canvas looking at the origin.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", width, height)
	}

	return &Canvas{
		width:      width,
		height:     height,
		counts:     make([]int, width*height),
		HalfHeight: 1,
		Samples:    defaultSamples,
	}, nil
}

func (c *Canvas) aspect() float64 {
	return float64(c.width) / float64(c.height)
}

// project maps a world point onto the viewing plane.
func (c *Canvas) project(p mgl64.Vec3) geometry.XY {
	turned := geometry.Rescale(geometry.XY{X: p.X(), Y: p.Z()}, 1, c.Yaw, geometry.XY{})
	return geometry.XY{X: turned.X, Y: p.Y()}
}

// Fit frames every drawable node under root.
func (c *Canvas) Fit(g *scene.Graph, root scene.NodeID) error {
	lo := geometry.XY{X: math.Inf(1), Y: math.Inf(1)}
	hi := geometry.XY{X: math.Inf(-1), Y: math.Inf(-1)}

	err := g.Walk(root, func(n scene.Node) error {
		if !n.Drawable() {
			return nil
		}
		for _, p := range []mgl64.Vec3{n.Base(), n.Tip(), n.Position} {
			xy := c.project(p)
			lo.X, lo.Y = math.Min(lo.X, xy.X), math.Min(lo.Y, xy.Y)
			hi.X, hi.Y = math.Max(hi.X, xy.X), math.Max(hi.Y, xy.Y)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if math.IsInf(lo.X, 1) {
		// Nothing to draw.
		return nil
	}

	c.Center = geometry.XY{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
	half := math.Max((hi.Y-lo.Y)/2, (hi.X-lo.X)/2/c.aspect()) * margin
	if half == 0 {
		half = 1
	}
	c.HalfHeight = half
	return nil
}

// Draw samples n evenly from base to tip.
func (c *Canvas) Draw(n scene.Node) error {
	samples := c.Samples
	if samples < 1 {
		samples = 1
	}

	base, tip := n.Base(), n.Tip()
	for i := 0; i < samples; i++ {
		t := (float64(i) + 0.5) / float64(samples)
		c.plot(base.Add(tip.Sub(base).Mul(t)))
	}
	return nil
}

func (c *Canvas) plot(p mgl64.Vec3) {
	scale := 1 / c.HalfHeight
	xy := geometry.Rescale(c.project(p), scale, 0, geometry.XY{X: -c.Center.X * scale, Y: -c.Center.Y * scale})

	aspect := c.aspect()
	if xy.X < -aspect || xy.X >= aspect || xy.Y <= -1 || xy.Y > 1 {
		c.Clipped++
		return
	}

	px := int((xy.X + aspect) / (2 * aspect) * float64(c.width))
	py := int((1 - xy.Y) / 2 * float64(c.height))
	px = min(px, c.width-1)
	py = min(py, c.height-1)

	c.counts[px+py*c.width]++
}

// Count is the number of samples that landed on pixel (x, y).
func (c *Canvas) Count(x, y int) int {
	return c.counts[x+y*c.width]
}

// Image normalizes the counts so the densest pixel is white.
func (c *Canvas) Image() *image.Gray16 {
	maxCount := 0
	for _, n := range c.counts {
		maxCount = max(maxCount, n)
	}

	img := image.NewGray16(image.Rect(0, 0, c.width, c.height))
	if maxCount == 0 {
		return img
	}

	for i, n := range c.counts {
		img.Set(i%c.width, i/c.width, color.Gray16{Y: uint16(n * math.MaxUint16 / maxCount)})
	}
	return img
}

// WritePNG encodes the image to w.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// Save writes the image to a PNG file at path.
func (c *Canvas) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := c.WritePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Render fits the canvas to the structure under root and draws it.
func Render(c *Canvas, g *scene.Graph, root scene.NodeID) error {
	if err := c.Fit(g, root); err != nil {
		return err
	}
	return scene.Render(g, root, c)
}
