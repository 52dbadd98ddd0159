package toc

import (
	"errors"
	"fmt"
)

// ErrRegionNotFound means no TOC region could be located in the leading
// pages. Callers treat this as structure-unavailable, not a fatal error.
var ErrRegionNotFound = errors.New("toc region not found")

// ErrNoUsableCandidate means every extraction tier failed or was rejected.
var ErrNoUsableCandidate = errors.New("no extraction tier produced a usable candidate")

// ErrNotApplicable is returned by a tier that does not apply to the input
// (e.g. language-model reconstruction when the text is not scrambled).
var ErrNotApplicable = errors.New("tier not applicable to this input")

// TierError wraps a failure from one extraction tier.
type TierError struct {
	Tier Tier
	Err  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("tier %s failed: %v", e.Tier, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}

// LowConfidenceError marks a model-tier candidate rejected for falling
// below the confidence gate.
type LowConfidenceError struct {
	Tier  Tier
	Score float64
}

func (e *LowConfidenceError) Error() string {
	return fmt.Sprintf("tier %s rejected: confidence %.3f below gate", e.Tier, e.Score)
}
