package machine

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/alphabet"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/stepping"
)

// StageKind names one component on the signal path.
type StageKind uint8

const (
	StagePlugboard StageKind = iota
	StageEntry
	StageRotorForward
	StageReflector
	StageRotorBackward
	StageEntryReturn
	StagePlugboardReturn
)

var stageNames = map[StageKind]string{
	StagePlugboard:       "plugboard",
	StageEntry:           "entry",
	StageRotorForward:    "rotor",
	StageReflector:       "reflector",
	StageRotorBackward:   "rotor-back",
	StageEntryReturn:     "entry-back",
	StagePlugboardReturn: "plugboard-back",
}

func (k StageKind) String() string {
	if name, ok := stageNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StageKind(%d)", k)
}

// Stage is the letter leaving one component. Slot is the rotor slot for
// rotor stages and -1 otherwise.
type Stage struct {
	Kind   StageKind
	Slot   int
	Letter alphabet.Letter
}

// Trace records one key press.
type Trace struct {
	Input    alphabet.Letter
	Output   alphabet.Letter
	Before   State
	After    State
	Movement stepping.Movement
	Stages   []Stage
}

func (t *Trace) record(kind StageKind, slot int, l alphabet.Letter) {
	if t == nil {
		return
	}
	t.Stages = append(t.Stages, Stage{Kind: kind, Slot: slot, Letter: l})
}

// Path renders the letter sequence, e.g. "A>B>...>X".
func (t Trace) Path() string {
	var b strings.Builder
	b.WriteRune(t.Input.Rune())
	for _, s := range t.Stages {
		b.WriteByte('>')
		b.WriteRune(s.Letter.Rune())
	}
	return b.String()
}
