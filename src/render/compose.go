package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// titleBand is the strip under the panes that carries the axis titles.
const titleBand = 18

// Blank returns a w x h image filled with the chart background, used as a
// fallback when a render fails so the UI still updates.
func Blank(w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)
	return img
}

// Compose stitches the axis gutter and the plot pane side by side. When either
// title is set a strip is added underneath: the Y title under the gutter, the X
// title right-aligned under the plot.
func Compose(axis, plot image.Image, xTitle, yTitle string) image.Image {
	if axis == nil || plot == nil {
		return nil
	}
	ab, pb := axis.Bounds(), plot.Bounds()
	h := ab.Dy()
	if pb.Dy() > h {
		h = pb.Dy()
	}
	withTitles := strings.TrimSpace(xTitle) != "" || strings.TrimSpace(yTitle) != ""
	total := h
	if withTitles {
		total += titleBand
	}
	out := Blank(ab.Dx()+pb.Dx(), total).(*image.RGBA)
	draw.Draw(out, image.Rect(0, 0, ab.Dx(), ab.Dy()), axis, ab.Min, draw.Src)
	draw.Draw(out, image.Rect(ab.Dx(), 0, ab.Dx()+pb.Dx(), pb.Dy()), plot, pb.Min, draw.Src)
	if withTitles {
		baseline := total - 5
		drawText(out, yTitle, 4, baseline, false)
		drawText(out, xTitle, out.Bounds().Dx()-4, baseline, true)
	}
	return out
}

// drawText writes text with the 7x13 bitmap face at the given baseline. With
// alignRight the text ends at x instead of starting there.
func drawText(dst *image.RGBA, text string, x, y int, alignRight bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 60, G: 60, B: 67, A: 255}),
		Face: basicfont.Face7x13,
	}
	if alignRight {
		x -= dr.MeasureString(text).Ceil()
	}
	if x < 0 {
		x = 0
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}

// Composite renders both panes and stitches them with the chart titles.
func (c Chart) Composite() (image.Image, error) {
	axis, plot, err := c.Images()
	if err != nil {
		return nil, err
	}
	img := Compose(axis, plot, c.XTitle, c.YTitle)
	if img == nil {
		return nil, fmt.Errorf("compose: missing pane")
	}
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
