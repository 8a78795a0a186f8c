package stepping

import (
	"fmt"
	"slices"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
)

// Sequence captures the rotor windows visited by repeated steps, together
// with the movement that produced each window. Windows[0] is the start.
type Sequence struct {
	Windows   [][]alphabet.Letter
	Movements []Movement
}

// Walk applies n steps to a copy of start and returns every window visited.
// start is not modified.
func Walk(p Policy, start []alphabet.Letter, notches []Notches, n int) Sequence {
	pos := append([]alphabet.Letter(nil), start...)
	seq := Sequence{
		Windows:   make([][]alphabet.Letter, 0, n+1),
		Movements: make([]Movement, 0, n),
	}
	seq.Windows = append(seq.Windows, append([]alphabet.Letter(nil), pos...))
	for i := 0; i < n; i++ {
		seq.Movements = append(seq.Movements, Step(p, pos, notches))
		seq.Windows = append(seq.Windows, append([]alphabet.Letter(nil), pos...))
	}
	return seq
}

// Period counts the steps needed for the rotor window to return to start.
// The stepping function is not always a bijection on windows (the double
// step makes some windows unreachable), so a start that is never revisited
// yields an error once every window has been tried.
func Period(p Policy, start []alphabet.Letter, notches []Notches) (int, error) {
	limit := 1
	for range start {
		limit *= alphabet.Size
	}
	pos := append([]alphabet.Letter(nil), start...)
	for i := 1; i <= limit; i++ {
		Step(p, pos, notches)
		if slices.Equal(pos, start) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("stepping: window %s is not revisited", alphabet.String(start))
}
