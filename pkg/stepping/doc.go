// Package stepping implements the rotor-advance mechanisms of the modelled
// cipher machines.
//
// Stepping runs once per key press, before the letter passes the rotors, and
// only ever changes rotor positions. Positions are indexed left to right so
// that slot 0 is the slow rotor and the last slot is the fast rotor.
//
// # Policies
//
//   - STANDARD: the fast rotor always turns. The middle rotor turns when the
//     fast rotor sits on a notch, or when the middle rotor itself sits on a
//     notch. The left rotor turns when the middle rotor sits on a notch. The
//     second middle condition is the double step: a middle rotor that reaches
//     its notch turns again on the very next key press, carrying the left
//     rotor with it.
//   - NAVY: STANDARD on the three rightmost rotors. A fourth, leftmost rotor
//     (Beta or Gamma on the M4) never turns.
//   - TIRPITZ: an odometer. The middle rotor turns when the fast rotor sits
//     on a notch; the left rotor turns only when the middle rotor sits on a
//     notch and is turning in the same step.
//   - FIXED (also accepted as CUSTOM): the TIRPITZ rule, used for the
//     commercial and railway machines.
//
// The TIRPITZ/FIXED carry rule is an assumed odometer reading of the gear
// drive and has not been checked against a surviving machine.
//
// # Usage
//
//	positions := []alphabet.Letter{a, d, u}
//	notches := []stepping.Notches{rotorI, rotorII, rotorIII}
//	moved := stepping.Step(stepping.PolicyStandard, positions, notches)
//	if moved.Advanced(0) {
//		// the slow rotor turned
//	}
//
// Walk and Period run the mechanism without a signal path, which is useful
// for showing rotor trajectories.
package stepping
