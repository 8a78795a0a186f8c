// Package wiring holds the static rotor, reflector and machine-model tables.
//
// Tables are YAML documents with three sections:
//
//	rotors:
//	  "I": { wiring: EKMFLGDQVZNTOWYHXUSPAIBRCJ, notches: Q }
//	reflectors:
//	  "B": YRUHQSLDPXNGOKMIEBFZCWVJAT
//	models:
//	  - id: Enigma-I
//	    rotor_count: 3
//	    stepping: STANDARD
//	    rotors: ["I", "II", "III", "IV", "V"]
//	    reflectors: ["A", "B", "C"]
//	    plugboard: true
//
// Parse validates every entry once: rotor wirings must be bijections,
// reflectors fixed-point-free involutions, and models may only reference
// rotors and reflectors defined in the same document. A built-in catalogue is
// embedded and available through Default.
package wiring
