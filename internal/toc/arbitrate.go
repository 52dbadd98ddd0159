package toc

import (
	"context"
	"errors"
	"log/slog"
)

// Arbitrator runs the extraction tiers in escalation order and accepts the
// first usable candidate. Cheap deterministic tiers run before model tiers;
// a tier is never consulted once an earlier one succeeds.
type Arbitrator struct {
	Extractors []Extractor

	// MinEntries is the acceptance gate for every tier: fewer entries
	// means the tier matched noise, not a TOC.
	MinEntries int

	// MinModelConfidence additionally gates model tiers: their page
	// numbers come from a model, so a candidate where most pages are
	// missing is not worth trusting over escalation.
	MinModelConfidence float64

	Logger *slog.Logger
}

// Run escalates through the tiers and returns the first accepted
// candidate. When every tier fails or is rejected it returns
// ErrNoUsableCandidate wrapped with the per-tier failures.
func (a *Arbitrator) Run(ctx context.Context, in *Input) (*Candidate, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var failures []error
	for _, ex := range a.Extractors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, err := ex.Extract(ctx, in)
		if err != nil {
			if errors.Is(err, ErrNotApplicable) {
				logger.Debug("extraction tier not applicable", "tier", ex.Tier())
				continue
			}
			logger.Warn("extraction tier failed", "tier", ex.Tier(), "error", err)
			failures = append(failures, &TierError{Tier: ex.Tier(), Err: err})
			continue
		}

		if rejectErr := a.reject(candidate); rejectErr != nil {
			logger.Info("extraction tier rejected", "tier", ex.Tier(),
				"entries", len(candidate.Entries), "confidence", candidate.Confidence,
				"reason", rejectErr)
			failures = append(failures, rejectErr)
			continue
		}

		logger.Info("extraction tier accepted", "tier", ex.Tier(),
			"entries", len(candidate.Entries), "confidence", candidate.Confidence)
		return candidate, nil
	}

	failures = append([]error{ErrNoUsableCandidate}, failures...)
	return nil, errors.Join(failures...)
}

// reject applies the acceptance gates to a tier's candidate.
func (a *Arbitrator) reject(c *Candidate) error {
	minEntries := a.MinEntries
	if minEntries <= 0 {
		minEntries = 3
	}
	if len(c.Entries) < minEntries {
		return &TierError{Tier: c.Tier, Err: errors.New("too few entries")}
	}
	if c.Tier.IsModelTier() && c.Confidence <= a.MinModelConfidence {
		return &LowConfidenceError{Tier: c.Tier, Score: c.Confidence}
	}
	return nil
}
