// Package errs holds the sentinel errors shared across pdflayout's pipeline
// stages, so callers can use errors.Is regardless of which stage produced
// the error.
package errs

import "errors"

var (
	// ErrExternalToolFailed is returned when an external tool adapter's
	// subprocess fails or its output cannot be parsed.
	ErrExternalToolFailed = errors.New("pdflayout: external tool failed")

	// ErrEmptySpace is returned when the reading direction of a
	// DocumentSpace with no words is requested.
	ErrEmptySpace = errors.New("pdflayout: empty document space")

	// ErrUndetectableOrientation is returned when a word's orientation
	// cannot be determined but an operation requires it.
	ErrUndetectableOrientation = errors.New("pdflayout: undetectable orientation")

	// ErrCutThroughWord is returned when a computed cut point falls exactly
	// on a word's center, making it impossible to assign the word to either
	// side.
	ErrCutThroughWord = errors.New("pdflayout: cut passes through word")

	// ErrInvalidState is returned for programmer-error conditions that
	// should be unreachable through the public API.
	ErrInvalidState = errors.New("pdflayout: invalid internal state")
)
