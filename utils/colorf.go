package utils

type ColorFloat [4]float32

func (c *ColorFloat) RGBA() (r, g, b, a uint32) {
	const mf = float32(256*256 - 1)
	r = uint32(c[0] * mf)
	g = uint32(c[1] * mf)
	b = uint32(c[2] * mf)
	a = uint32(c[3] * mf)
	return
}

func (c *ColorFloat) Set(r, g, b, a float32) {
	c[0], c[1], c[2], c[3] = r, g, b, a
}

// Add offsets every channel, unclamped. Clamp before handing to a renderer.
func (c *ColorFloat) Add(r, g, b, a float32) {
	c[0] += r
	c[1] += g
	c[2] += b
	c[3] += a
}

// Lerp moves every channel toward o by t.
func (c *ColorFloat) Lerp(o *ColorFloat, t float32) {
	c[0] += (o[0] - c[0]) * t
	c[1] += (o[1] - c[1]) * t
	c[2] += (o[2] - c[2]) * t
	c[3] += (o[3] - c[3]) * t
}

func (c *ColorFloat) LerpValues(r, g, b, a, t float32) {
	c[0] += (r - c[0]) * t
	c[1] += (g - c[1]) * t
	c[2] += (b - c[2]) * t
	c[3] += (a - c[3]) * t
}

func (c *ColorFloat) Clamp() {
	for i := range c {
		c[i] = Clamp(c[i], 0, 1)
	}
}

func NewColorFloatA(c []float32) ColorFloat {
	return ColorFloat{c[0], c[1], c[2], c[3]}
}

func NewColorFloat(c []float32) ColorFloat {
	return ColorFloat{c[0], c[1], c[2], 1.0}
}
