//go:build ebiten

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// minBlend computes min(src, dst) per color channel while leaving the
// destination alpha untouched. The canvas is opaque, so erasing with
// black source geometry yields exact black at every covered pixel,
// including antialiased fringes that source-over could not undo.
var minBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationMin,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

func (m BlendMode) ebitenBlend() ebiten.Blend {
	if m == BlendMin {
		return minBlend
	}
	return ebiten.Blend{} // zero value is source-over
}

// CommandList is a batch pre-tessellated into vertices so it can be
// resubmitted with a single draw call. Compiling is the expensive
// half; replaying is cheap.
type CommandList struct {
	vs    []ebiten.Vertex
	is    []uint16
	blend ebiten.Blend
}

// Compile tessellates every operation of the batch. Malformed
// operations are skipped and reported; the returned command list
// holds whatever remained drawable.
func Compile(b *Batch) (*CommandList, error) {
	cl := &CommandList{blend: b.Blend.ebitenBlend()}
	var errs []error
	for i := range b.Ops {
		if err := cl.appendOp(&b.Ops[i]); err != nil {
			errs = append(errs, fmt.Errorf("op %d: %w", i, err))
		}
	}
	return cl, errors.Join(errs...)
}

func (cl *CommandList) appendOp(op *Op) error {
	var p vector.Path
	fill := false

	switch op.Kind {
	case KindLine:
		p.MoveTo(op.Start.X, op.Start.Y)
		p.LineTo(op.End.X, op.End.Y)
	case KindPolyline:
		if len(op.Points) < 2 {
			return fmt.Errorf("polyline with %d points", len(op.Points))
		}
		p.MoveTo(op.Points[0].X, op.Points[0].Y)
		for _, pt := range op.Points[1:] {
			p.LineTo(pt.X, pt.Y)
		}
	case KindRect, KindFilledRect:
		r := op.Rect
		p.MoveTo(r.Left, r.Top)
		p.LineTo(r.Right, r.Top)
		p.LineTo(r.Right, r.Bottom)
		p.LineTo(r.Left, r.Bottom)
		p.Close()
		fill = op.Kind == KindFilledRect
	default:
		return fmt.Errorf("unknown op kind %d", op.Kind)
	}

	base := len(cl.vs)
	if fill {
		cl.vs, cl.is = p.AppendVerticesAndIndicesForFilling(cl.vs, cl.is)
	} else {
		if op.Thickness <= 0 {
			return fmt.Errorf("stroke with thickness %v", op.Thickness)
		}
		cl.vs, cl.is = p.AppendVerticesAndIndicesForStroke(cl.vs, cl.is, &vector.StrokeOptions{
			Width: op.Thickness,
		})
	}

	r := float32(op.Color.R) / 255
	g := float32(op.Color.G) / 255
	bl := float32(op.Color.B) / 255
	a := float32(op.Color.A) / 255
	for i := base; i < len(cl.vs); i++ {
		cl.vs[i].SrcX = 1
		cl.vs[i].SrcY = 1
		cl.vs[i].ColorR = r
		cl.vs[i].ColorG = g
		cl.vs[i].ColorB = bl
		cl.vs[i].ColorA = a
	}
	return nil
}

// Canvas is the persistent offscreen target the scene accumulates on.
// It is cleared to opaque black only when created; everything after
// that is incremental.
type Canvas struct {
	img *ebiten.Image
}

// NewCanvas allocates a canvas of the given pixel size, cleared to
// black.
func NewCanvas(w, h int) *Canvas {
	img := ebiten.NewImage(w, h)
	img.Fill(color.Black)
	return &Canvas{img: img}
}

// Size reports the canvas dimensions in pixels.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image for composition onto the screen.
func (c *Canvas) Image() *ebiten.Image { return c.img }

// Replay submits a compiled command list in one draw call.
func (c *Canvas) Replay(cl *CommandList) {
	if len(cl.is) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		Blend:     cl.blend,
	}
	c.img.DrawTriangles(cl.vs, cl.is, whiteSub, op)
}

// Submit executes the batches in order. Errors are render-only: every
// drawable operation is still applied, and the caller is expected to
// log and move on (simulation state never depends on a draw call
// having succeeded).
func (c *Canvas) Submit(batches []Batch) error {
	var errs []error
	for i := range batches {
		cl, err := Compile(&batches[i])
		if err != nil {
			errs = append(errs, err)
		}
		c.Replay(cl)
	}
	return errors.Join(errs...)
}
