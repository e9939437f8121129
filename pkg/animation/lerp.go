package animation

// LerpFunc linearly interpolates between two values of the same type.
// It receives the begin value, end value, and progress t in [0, 1].
type LerpFunc[T any] func(a, b T, t float64) T

// Lerpable is implemented by value types that know how to interpolate
// toward another value of the same type.
type Lerpable[T any] interface {
	Lerp(to T, t float64) T
}

// LerpOf adapts a Lerpable implementation into a LerpFunc.
func LerpOf[T Lerpable[T]]() LerpFunc[T] {
	return func(a, b T, t float64) T {
		return a.Lerp(b, t)
	}
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpInt linearly interpolates between two int values, rounding toward
// the nearer integer.
func LerpInt(a, b int, t float64) int {
	return a + int(float64(b-a)*t+0.5)
}

// Color is a 32-bit ARGB color, the representation used for animated
// color properties.
type Color uint32

// LerpColor interpolates each ARGB channel independently.
func LerpColor(a, b Color, t float64) Color {
	aA := float64((a >> 24) & 0xFF)
	aR := float64((a >> 16) & 0xFF)
	aG := float64((a >> 8) & 0xFF)
	aB := float64(a & 0xFF)

	bA := float64((b >> 24) & 0xFF)
	bR := float64((b >> 16) & 0xFF)
	bG := float64((b >> 8) & 0xFF)
	bB := float64(b & 0xFF)

	alpha := uint32(LerpFloat64(aA, bA, t))
	r := uint32(LerpFloat64(aR, bR, t))
	g := uint32(LerpFloat64(aG, bG, t))
	b8 := uint32(LerpFloat64(aB, bB, t))

	return Color(alpha<<24 | r<<16 | g<<8 | b8)
}
