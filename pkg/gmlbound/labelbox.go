package gmlbound

import "unicode/utf8"

// LabelBox is the rectangle drawn behind a town-name label.
//
// Top is the upper edge in drawing space where Y grows upward, so the box
// spans Top-Height..Top vertically and Left..Left+Width horizontally.
type LabelBox struct {
	Left        float64
	Top         float64
	Width       float64
	Height      float64
	StrokeWidth float64
	Fill        Color
	Stroke      Color
}

// NewLabelBox sizes a box for text centred on anchor.
func NewLabelBox(text string, anchor PlanarPoint, fontPoint float64) LabelBox {
	width := float64(utf8.RuneCountInString(text))*fontPoint + fontPoint/4
	height := fontPoint + fontPoint/3
	return LabelBox{
		Left:        anchor.X - width/2,
		Top:         anchor.Y + fontPoint,
		Width:       width,
		Height:      height,
		StrokeWidth: fontPoint / 20,
	}
}

// Bounds returns the box extent.
func (b LabelBox) Bounds() Bounds {
	return Bounds{
		MinX: b.Left,
		MaxX: b.Left + b.Width,
		MinY: b.Top - b.Height,
		MaxY: b.Top,
	}
}
