package mandel

// EscapeRadiusSq is |z|² past which an orbit is considered escaped (|z| > 2).
const EscapeRadiusSq = 4.0

// Iterate counts the steps of z = z² + c, starting from z = 0, taken while |z| <= 2,
// capped at maxIter. Points that never escape return maxIter.
func Iterate(c Point, maxIter int) int {
	var z Point
	n := 0
	for n < maxIter && z.AbsSq() <= EscapeRadiusSq {
		z = z.Sqr().Add(c)
		n++
	}
	return n
}
