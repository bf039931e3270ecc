package testutil

import (
	"time"

	"tangkhul/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockEntryRepository is a mock for EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindExact(normalized, sourceLang, targetLang string) (*domain.TranslationEntry, error) {
	args := m.Called(normalized, sourceLang, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationEntry), args.Error(1)
}

func (m *MockEntryRepository) FindCandidates(sourceLang, targetLang string, minConfidence, limit int) ([]domain.TranslationEntry, error) {
	args := m.Called(sourceLang, targetLang, minConfidence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TranslationEntry), args.Error(1)
}

func (m *MockEntryRepository) FindWord(token, sourceLang, targetLang string) (*domain.TranslationEntry, error) {
	args := m.Called(token, sourceLang, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationEntry), args.Error(1)
}

func (m *MockEntryRepository) CountApproved(sourceLang, targetLang string) (int, error) {
	args := m.Called(sourceLang, targetLang)
	return args.Int(0), args.Error(1)
}

// MockConsensusRepository is a mock for ConsensusRepository
type MockConsensusRepository struct {
	mock.Mock
}

func (m *MockConsensusRepository) FindBest(sourceText, sourceLang string, minAgreement float64) (*domain.ConsensusRecord, error) {
	args := m.Called(sourceText, sourceLang, minAgreement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsensusRecord), args.Error(1)
}

// MockCacheRepository is a mock for CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(hash, sourceLang, targetLang string) (*domain.CacheEntry, error) {
	args := m.Called(hash, sourceLang, targetLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CacheEntry), args.Error(1)
}

func (m *MockCacheRepository) RecordHit(hash, sourceLang, targetLang string) error {
	args := m.Called(hash, sourceLang, targetLang)
	return args.Error(0)
}

func (m *MockCacheRepository) Upsert(entry *domain.CacheEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteIdle(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalyticsRepository is a mock for AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) LogRequest(rec *domain.RequestLog) error {
	args := m.Called(rec)
	return args.Error(0)
}
