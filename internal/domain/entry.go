package domain

import "time"

// EntryStatus is the review lifecycle state of a translation entry
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusGolden   EntryStatus = "golden"
)

// TranslationEntry is a single vetted phrase pair contributed by the community
type TranslationEntry struct {
	ID               int
	SourceText       string
	TargetText       string
	NormalizedSource string
	NormalizedTarget string
	SourceLanguage   string
	TargetLanguage   string
	Status           EntryStatus
	ConfidenceScore  int
	GrammarTags      string // comma-separated part-of-speech tags, may be empty
	FrequencyTag     int    // usage frequency rank, higher = more common
	WordCount        int
	Golden           bool
	CreatedAt        time.Time
}

// ConsensusRecord aggregates all raw submissions of the same phrase pair.
// Keyed by the raw (not normalized) text pair: distinct surface forms keep
// distinct rows even when normalization would collapse them.
type ConsensusRecord struct {
	ID               int
	EnglishText      string
	TangkhulText     string
	SubmissionCount  int
	ExpertVotes      int
	ReviewerVotes    int
	ContributorVotes int
	AgreementScore   float64 // weighted agreement, 0-100
	Golden           bool
	UpdatedAt        time.Time
}
