package textnorm

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"plain", "hello world", Options{}, "HELLOWORLD"},
		{"filler", "hello  world ", Options{SpaceFiller: 'X'}, "HELLOXWORLD"},
		{"lowercase filler", "an die", Options{SpaceFiller: 'x'}, "ANXDIE"},
		{"non-letter filler ignored", "an die", Options{SpaceFiller: '-'}, "ANDIE"},
		{"sharp s", "Straße", Options{}, "STRASSE"},
		{"umlauts stripped", "Übermäßig", Options{}, "UBERMASSIG"},
		{"umlauts folded", "Übermäßig", Options{FoldUmlauts: true}, "UEBERMAESSIG"},
		{"decomposed umlaut folded", "O\u0308l", Options{FoldUmlauts: true}, "OEL"},
		{"accents", "café à la crème", Options{}, "CAFEALACREME"},
		{"digits and punctuation dropped", "U-534, 05.05.1945!", Options{}, "U"},
		{"empty", "", Options{SpaceFiller: 'X'}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in, tc.opts))
		})
	}
}

func TestLetters(t *testing.T) {
	got := Letters("ab c", Options{SpaceFiller: 'X'})
	assert.Equal(t, "ABXC", alphabet.String(got))
	assert.Empty(t, Letters("123", Options{}))
}

func TestGroup(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"ABCDEFGHIJKL", 5, "ABCDE FGHIJ KL"},
		{"ABCDEFGHIJ", 5, "ABCDE FGHIJ"},
		{"ABC", 5, "ABC"},
		{"ABCDEF", 4, "ABCD EF"},
		{"ABCDEF", 0, "ABCDEF"},
		{"", 5, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Group(tc.in, tc.n), "Group(%q, %d)", tc.in, tc.n)
	}
}
