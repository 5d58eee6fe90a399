package layout

import "math"

// Options configures the simulation. Zero values take the defaults below.
type Options struct {
	Width  float64 // canvas width, default 960
	Height float64 // canvas height, default 600

	LinkDistance   float64 // default 100
	ChargeStrength float64 // default -300
	ChargeMin      float64 // minimum charge distance, default 1
	CollideRadius  float64 // default 40

	AlphaMin      float64 // default 0.001
	AlphaDecay    float64 // default 1 - AlphaMin^(1/300)
	VelocityDecay float64 // default 0.4
	DragAlpha     float64 // alpha target while dragging, default 0.3

	// Seed keeps positions from a previous layout, keyed by node id
	Seed map[string]Point
}

// Point is a canvas coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	initialRadius = 10
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

func (o Options) withDefaults() Options {
	d := Options{
		Width:          960,
		Height:         600,
		LinkDistance:   100,
		ChargeStrength: -300,
		ChargeMin:      1,
		CollideRadius:  40,
		AlphaMin:       0.001,
		VelocityDecay:  0.4,
		DragAlpha:      0.3,
		Seed:           o.Seed,
	}

	if o.Width > 0 {
		d.Width = o.Width
	}
	if o.Height > 0 {
		d.Height = o.Height
	}
	if o.LinkDistance > 0 {
		d.LinkDistance = o.LinkDistance
	}
	if o.ChargeStrength != 0 {
		d.ChargeStrength = o.ChargeStrength
	}
	if o.ChargeMin > 0 {
		d.ChargeMin = o.ChargeMin
	}
	if o.CollideRadius > 0 {
		d.CollideRadius = o.CollideRadius
	}
	if o.AlphaMin > 0 {
		d.AlphaMin = o.AlphaMin
	}
	if o.VelocityDecay > 0 {
		d.VelocityDecay = o.VelocityDecay
	}
	if o.DragAlpha > 0 {
		d.DragAlpha = o.DragAlpha
	}

	d.AlphaDecay = 1 - math.Pow(d.AlphaMin, 1.0/300)
	if o.AlphaDecay > 0 {
		d.AlphaDecay = o.AlphaDecay
	}
	return d
}

// Center is the point the center force pulls toward
func (o Options) Center() Point {
	return Point{X: o.Width / 2, Y: o.Height / 2}
}
