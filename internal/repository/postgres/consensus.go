package postgres

import (
	"database/sql"

	"tangkhul/internal/domain"
)

// ConsensusRepo implements repository.ConsensusRepository
type ConsensusRepo struct {
	db *sql.DB
}

// NewConsensusRepo creates a new consensus repository
func NewConsensusRepo(db *sql.DB) *ConsensusRepo {
	return &ConsensusRepo{db: db}
}

// FindBest returns the strongest consensus record matching the raw source
// text. Consensus rows are keyed by raw text, so the lookup is exact surface
// equality, not normalized equality.
func (r *ConsensusRepo) FindBest(sourceText, sourceLang string, minAgreement float64) (*domain.ConsensusRecord, error) {
	sourceColumn := "english_text"
	if sourceLang == "tangkhul" {
		sourceColumn = "tangkhul_text"
	}

	query := `
		SELECT id, english_text, tangkhul_text, submission_count,
			expert_votes, reviewer_votes, contributor_votes,
			agreement_score, golden, updated_at
		FROM consensus_records
		WHERE ` + sourceColumn + ` = $1
			AND agreement_score >= $2
		ORDER BY agreement_score DESC, submission_count DESC
		LIMIT 1
	`

	var c domain.ConsensusRecord
	err := r.db.QueryRow(query, sourceText, minAgreement).Scan(
		&c.ID, &c.EnglishText, &c.TangkhulText, &c.SubmissionCount,
		&c.ExpertVotes, &c.ReviewerVotes, &c.ContributorVotes,
		&c.AgreementScore, &c.Golden, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}
