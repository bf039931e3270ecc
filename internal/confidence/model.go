// Package confidence maps a match method plus its metadata to a 0-100 score.
package confidence

import (
	"math"

	"tangkhul/internal/config"
	"tangkhul/internal/domain"
)

// Params carries the method-specific inputs to a score
type Params struct {
	// Consensus inputs
	ExpertVotes      int
	ReviewerVotes    int
	ContributorVotes int
	SubmissionCount  int

	// Similarity input, in [0,1]
	Similarity float64

	// Partial-match coverage, matched tokens / total tokens, in [0,1]
	Coverage float64

	GrammarMatch bool
	Golden       bool
}

// Model scores candidates. Pure and deterministic: identical inputs always
// produce the identical integer.
type Model struct {
	cfg config.Scoring
}

// NewModel creates a model from the injected scoring constants
func NewModel(cfg config.Scoring) *Model {
	return &Model{cfg: cfg}
}

// AgreementRatio normalizes tier-weighted votes against the theoretical
// maximum, i.e. every submission coming from an expert
func (m *Model) AgreementRatio(p Params) float64 {
	if p.SubmissionCount <= 0 {
		return 0
	}
	weighted := p.ExpertVotes*m.cfg.ExpertWeight +
		p.ReviewerVotes*m.cfg.ReviewerWeight +
		p.ContributorVotes*m.cfg.ContributorWeight
	return float64(weighted) / float64(p.SubmissionCount*m.cfg.ExpertWeight)
}

// Score returns the confidence for a match, clamped to [0,100]
func (m *Model) Score(method domain.Method, p Params) int {
	var base float64

	switch method {
	case domain.MethodCacheHit, domain.MethodExactMatch:
		base = 100
	case domain.MethodConsensus:
		ratio := m.AgreementRatio(p)
		switch {
		case ratio >= m.cfg.StrongAgreement:
			base = float64(m.cfg.StrongConsensusScore)
		case ratio >= m.cfg.ModerateAgreement:
			base = float64(m.cfg.ModerateConsensusScore)
		default:
			base = float64(m.cfg.WeakConsensusScore)
		}
	case domain.MethodSimilarity:
		base = float64(m.cfg.SimilarityBase) + math.Round(p.Similarity*float64(m.cfg.SimilarityRange))
	case domain.MethodPartial:
		base = math.Round(float64(m.cfg.PartialCap) * p.Coverage)
	default:
		base = float64(m.cfg.DefaultScore)
	}

	if p.GrammarMatch {
		base *= m.cfg.GrammarBoost
	}
	if p.Golden && base < float64(m.cfg.GoldenFloor) {
		base = float64(m.cfg.GoldenFloor)
	}

	score := int(math.Round(base))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
