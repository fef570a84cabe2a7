package vmath

// Clamp01 clamps t to [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseInOutCubic is the camera ease curve: slow start, slow settle
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutCubic decelerates into the endpoint, used by the tier-boundary dolly
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// SmoothStep is the fade curve (3t²-2t³): monotonic with exact 0 and 1
// endpoints, zero slope at both ends
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Lerp interpolates scalars, t unclamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
