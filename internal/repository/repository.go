package repository

import (
	"time"

	"tangkhul/internal/domain"
)

// EntryRepository defines read access to vetted translation entries
type EntryRepository interface {
	// FindExact returns the best approved entry whose normalized source text
	// equals normalized, or nil when none exists. Best = highest stored
	// confidence, then most recently created.
	FindExact(normalized, sourceLang, targetLang string) (*domain.TranslationEntry, error)

	// FindCandidates returns up to limit approved entries for the language
	// pair with stored confidence >= minConfidence, ordered by usage
	// frequency then confidence, for similarity scanning.
	FindCandidates(sourceLang, targetLang string, minConfidence, limit int) ([]domain.TranslationEntry, error)

	// FindWord returns the best approved single-word entry whose normalized
	// source equals token, or nil. Best = highest usage frequency.
	FindWord(token, sourceLang, targetLang string) (*domain.TranslationEntry, error)

	// CountApproved reports how many approved entries exist for the pair;
	// zero distinguishes an empty corpus from a mere miss.
	CountApproved(sourceLang, targetLang string) (int, error)
}

// ConsensusRepository defines read access to aggregated submission records
type ConsensusRepository interface {
	// FindBest returns the strongest consensus record whose source-side raw
	// text equals sourceText with agreement >= minAgreement, or nil.
	// Strongest = highest agreement score, then highest submission count.
	FindBest(sourceText, sourceLang string, minAgreement float64) (*domain.ConsensusRecord, error)
}

// CacheRepository defines the memoized-resolution store
type CacheRepository interface {
	// Get returns the cache entry for the triple, or nil on a miss
	Get(hash, sourceLang, targetLang string) (*domain.CacheEntry, error)

	// RecordHit increments the hit count and refreshes last_used_at
	RecordHit(hash, sourceLang, targetLang string) error

	// Upsert stores a resolution result. Racing writers for the same triple
	// must not error; the loser's write counts as a hit on the winner's row.
	Upsert(entry *domain.CacheEntry) error

	// DeleteIdle evicts entries not used since the cutoff, returning how
	// many rows were removed
	DeleteIdle(cutoff time.Time) (int64, error)
}

// AnalyticsRepository records per-request analytics
type AnalyticsRepository interface {
	LogRequest(rec *domain.RequestLog) error
}
