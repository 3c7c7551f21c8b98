package p8

import (
	"fmt"
	"image"
)

// Logical canvas size.
const (
	Width  = 128
	Height = 128
)

// Anchor selects where a 2× canvas sits vertically.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorCenter
	AnchorBottom
)

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorCenter:
		return "center"
	case AnchorBottom:
		return "bottom"
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "top":
		return AnchorTop, nil
	case "center", "centre":
		return AnchorCenter, nil
	case "bottom":
		return AnchorBottom, nil
	}
	return 0, fmt.Errorf("invalid anchor %q (want top, center or bottom)", s)
}

// Viewport places the scaled logical canvas on the device.
type Viewport struct {
	Scale  int
	Anchor Anchor
	Offset image.Point // device position of logical (0, 0)
	Device image.Point // device size
}

func NewViewport(device image.Point) Viewport {
	v := Viewport{Device: device}
	v.SetScale(1, AnchorCenter)
	return v
}

// SetScale recomputes the offset for scale s, which must be 1 or 2.
// The anchor only applies at 2×; other scales are ignored.
func (v *Viewport) SetScale(s int, a Anchor) {
	var (
		w = Width * s
		h = Height * s
	)
	switch s {
	default:
		return
	case 1:
		v.Offset = image.Pt((v.Device.X-w)/2, (v.Device.Y-h)/2)
	case 2:
		var y int
		switch a {
		case AnchorTop:
		case AnchorCenter:
			y = (v.Device.Y - h) / 2
		case AnchorBottom:
			y = v.Device.Y - h
		default:
			return
		}
		v.Offset = image.Pt((v.Device.X-w)/2, y)
	}
	v.Scale = s
	v.Anchor = a
}

func (v Viewport) ToDevice(p image.Point) image.Point {
	return p.Mul(v.Scale).Add(v.Offset)
}

// Canvas is the device-space rectangle of the whole scaled canvas.
func (v Viewport) Canvas() image.Rectangle {
	return image.Rect(0, 0, Width*v.Scale, Height*v.Scale).Add(v.Offset)
}

// Visible is the part of the canvas that lies on the device.
func (v Viewport) Visible() image.Rectangle {
	return v.Canvas().Intersect(image.Rectangle{Max: v.Device})
}

func (v Viewport) String() string {
	if v.Scale == 1 {
		return fmt.Sprintf("1x @%v", v.Offset)
	}
	return fmt.Sprintf("%dx %v @%v", v.Scale, v.Anchor, v.Offset)
}
