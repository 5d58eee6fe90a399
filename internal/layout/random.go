package layout

// lcg is the linear congruential generator used for jiggle, so layouts are
// reproducible for the same input.
type lcg struct {
	state uint32
}

func newLCG() *lcg {
	return &lcg{state: 1}
}

func (r *lcg) float() float64 {
	r.state = 1664525*r.state + 1013904223
	return float64(r.state) / 4294967296
}

// jiggle returns a tiny random offset used to separate coincident points
func (r *lcg) jiggle() float64 {
	return (r.float() - 0.5) * 1e-6
}
