package model

import "strings"

// Color is one of the fixed set of peg colors used in codewords
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorCyan   Color = "cyan"
)

// allColors is the fixed color set in its stable order
var allColors = []Color{
	ColorRed,
	ColorBlue,
	ColorGreen,
	ColorYellow,
	ColorPurple,
	ColorCyan,
}

// Colors returns the available colors in stable order
func Colors() []Color {
	out := make([]Color, len(allColors))
	copy(out, allColors)
	return out
}

// ColorCount returns the size of the fixed color set
func ColorCount() int {
	return len(allColors)
}

// IsValid reports whether the color is a member of the fixed set
func (c Color) IsValid() bool {
	for _, known := range allColors {
		if c == known {
			return true
		}
	}
	return false
}

// ParseColor converts a string to a Color, case-insensitively
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidColor
	}
	return c, nil
}

// Codeword is an ordered fixed-length sequence of colors, used as
// either a secret or a guess. Duplicate colors are allowed.
type Codeword []Color

// Clone returns an independent copy of the codeword
func (c Codeword) Clone() Codeword {
	out := make(Codeword, len(c))
	copy(out, c)
	return out
}

// Equal reports whether two codewords match slot for slot
func (c Codeword) Equal(other Codeword) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Strings converts the codeword to its wire representation
func (c Codeword) Strings() []string {
	out := make([]string, len(c))
	for i, color := range c {
		out[i] = string(color)
	}
	return out
}

// ParseCodeword converts a list of color names to a Codeword.
// Fails with ErrInvalidColor on the first unrecognized entry.
func ParseCodeword(values []string) (Codeword, error) {
	out := make(Codeword, 0, len(values))
	for _, v := range values {
		c, err := ParseColor(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
