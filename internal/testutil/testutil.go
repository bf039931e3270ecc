package testutil

import (
	"strings"
	"time"

	"tangkhul/internal/config"
	"tangkhul/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// TestScoring returns the production default scoring constants
func TestScoring() config.Scoring {
	return config.Scoring{
		ExpertWeight:           3,
		ReviewerWeight:         2,
		ContributorWeight:      1,
		StrongAgreement:        0.9,
		ModerateAgreement:      0.7,
		StrongConsensusScore:   95,
		ModerateConsensusScore: 85,
		WeakConsensusScore:     75,
		ConsensusMinScore:      70,
		CandidateMinConfidence: 70,
		SimilarityBase:         75,
		SimilarityRange:        20,
		SimilarityThreshold:    0.8,
		SuggestionThreshold:    0.2,
		PoolSize:               200,
		PartialCap:             60,
		DefaultScore:           40,
		GrammarBoost:           1.2,
		GoldenFloor:            95,
	}
}

// NewTestEntry creates an approved test entry with normalized fields filled
func NewTestEntry(id int, source, target, normalizedSource string) *domain.TranslationEntry {
	return &domain.TranslationEntry{
		ID:               id,
		SourceText:       source,
		TargetText:       target,
		NormalizedSource: normalizedSource,
		NormalizedTarget: target,
		SourceLanguage:   "english",
		TargetLanguage:   "tangkhul",
		Status:           domain.StatusApproved,
		ConfidenceScore:  90,
		WordCount:        len(strings.Fields(normalizedSource)),
		CreatedAt:        time.Now(),
	}
}

// NewTestConsensus creates a test consensus record
func NewTestConsensus(english, tangkhul string, experts, submissions int) *domain.ConsensusRecord {
	return &domain.ConsensusRecord{
		ID:              1,
		EnglishText:     english,
		TangkhulText:    tangkhul,
		SubmissionCount: submissions,
		ExpertVotes:     experts,
		AgreementScore:  90,
		UpdatedAt:       time.Now(),
	}
}

// NewTestCacheEntry creates a test cache entry
func NewTestCacheEntry(hash, translated string, confidence int, method domain.Method) *domain.CacheEntry {
	return &domain.CacheEntry{
		ID:             1,
		TextHash:       hash,
		SourceLanguage: "english",
		TargetLanguage: "tangkhul",
		TranslatedText: translated,
		Confidence:     confidence,
		Method:         method,
		HitCount:       1,
		LastUsedAt:     time.Now(),
		CreatedAt:      time.Now(),
	}
}
