// Package machine assembles rotors, a reflector, an entry wheel and a
// plugboard into a working cipher machine.
//
// A Machine is built once from a Config, validated against a set of wiring
// tables, and then processes letters one at a time. Every key press first
// steps the rotors and then sends the signal through
//
//	plugboard > entry wheel > rotors right to left > reflector >
//	rotors left to right > entry wheel > plugboard
//
// Because every stage is either an involution or is traversed both ways,
// the whole machine is its own inverse at any rotor position: encrypting
// and decrypting are the same operation.
//
//	m, err := machine.New(nil, machine.Config{
//		Model:     "Enigma-I",
//		Rotors:    []string{"I", "II", "III"},
//		Reflector: "B",
//	})
//	out, err := m.EncodeString("HELLOWORLD")
//
// Only the rotor positions and a letter counter change while a machine runs.
// They are exposed as State through Snapshot and Restore.
package machine
