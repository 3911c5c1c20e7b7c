package color

import "testing"

import "github.com/stretchr/testify/assert"

func TestParseForms(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#fff", 0xffffffff},
		{"#000", 0xff000000},
		{"#f00", 0xffff0000},
		{"#8f00", premultiply(0x88, 0xff, 0x00, 0x00)},
		{"ff0000", 0xffff0000},
		{"#ff0000", 0xffff0000},
		{"#80ff0000", premultiply(0x80, 0xff, 0x00, 0x00)},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("#12")
	assert.Error(t, err)
	_, err = Parse("#gggggg")
	assert.Error(t, err)
}

func TestPremultiplication(t *testing.T) {
	c, err := Parse("#80ff0000")
	assert.NoError(t, err)
	// alpha=0x80 (128/255), red channel premultiplied: 255*128/255 = 128.
	assert.EqualValues(t, 0x80, c.A())
	assert.EqualValues(t, 128, c.R())
	assert.EqualValues(t, 0, c.G())
	assert.EqualValues(t, 0, c.B())
}

func TestHexRoundTrip(t *testing.T) {
	c, err := Parse("#11223344")
	assert.NoError(t, err)
	// Premultiplying by alpha 0x11 stores 0x02/0x03/0x04, so the original
	// digits cannot come back; Hex yields a literal that parses to c again.
	assert.Equal(t, "#111e2d3c", c.Hex())
	back, err := Parse(c.Hex())
	assert.NoError(t, err)
	assert.Equal(t, c, back)
}
