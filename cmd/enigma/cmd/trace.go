package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/machine"
	"github.com/OpenTraceLab/OpenTraceEnigma/pkg/textnorm"
)

var traceFlags machineFlags

var traceCmd = &cobra.Command{
	Use:   "trace <letters>",
	Short: "Show rotor stepping and the signal path for each key press",
	Long: `Press each letter in turn and print the rotor window before and after,
which rotors moved, and the letter leaving every component on the way
through the machine.

Examples:
  enigma trace --positions ADU AAAA
  enigma trace -v -m Enigma-T -r "T-I T-II T-III" -u T HELLO`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceFlags.register(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	m, err := traceFlags.machine()
	if err != nil {
		return err
	}
	letters := textnorm.Letters(args[0], textnorm.Options{})
	if len(letters) == 0 {
		return fmt.Errorf("no letters to trace in %q", args[0])
	}

	fmt.Printf("%s  %s  UKW %s  window %s\n", m.Model().ID,
		strings.Join(m.Config().Rotors, " "), m.Config().Reflector, m.Snapshot())
	fmt.Printf("%4s  %-3s %-5s %-5s %-7s %s\n", "#", "key", "from", "to", "moved", "lamp")

	for i, l := range letters {
		tr := m.EncodeTrace(l)
		fmt.Printf("%4d  %-3s %-5s %-5s %-7s %s\n", i+1, tr.Input, tr.Before, tr.After,
			movedSlots(tr, m.Snapshot().Rotors), tr.Output)
		if verbose {
			for _, s := range tr.Stages {
				name := s.Kind.String()
				if s.Slot >= 0 {
					name = fmt.Sprintf("%s %s", name, m.Config().Rotors[s.Slot])
				}
				fmt.Printf("        %-18s %s\n", name, s.Letter)
			}
		}
		logger.Debug("key pressed", "in", tr.Input.String(), "out", tr.Output.String(), "path", tr.Path())
	}
	return nil
}

// movedSlots renders the movement as one mark per slot, e.g. ".^^" for a
// double step on a three-rotor machine.
func movedSlots(tr machine.Trace, rotors int) string {
	var b strings.Builder
	for slot := 0; slot < rotors; slot++ {
		if tr.Movement.Advanced(slot) {
			b.WriteByte('^')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
