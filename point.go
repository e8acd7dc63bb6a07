package mandel

// Point is a complex number. Methods return new values and never modify the receiver.
// Products are converted explicitly so no platform fuses them into FMA instructions.
type Point struct {
	Re, Im float64
}

func (p Point) Add(q Point) Point {
	return Point{Re: p.Re + q.Re, Im: p.Im + q.Im}
}

// Sqr returns p*p.
func (p Point) Sqr() Point {
	return Point{
		Re: float64(p.Re*p.Re) - float64(p.Im*p.Im),
		Im: float64(2 * p.Re * p.Im),
	}
}

// AbsSq is the squared magnitude, which avoids the square root of Abs.
func (p Point) AbsSq() float64 {
	return float64(p.Re*p.Re) + float64(p.Im*p.Im)
}
