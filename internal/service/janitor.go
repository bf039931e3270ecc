package service

import (
	"time"

	"tangkhul/internal/repository"

	"go.uber.org/zap"
)

// JanitorService evicts idle cache entries. Eviction is an explicit policy
// choice: idleDays = 0 keeps every entry forever.
type JanitorService struct {
	cache    repository.CacheRepository
	idleDays int
	logger   *zap.Logger
}

// NewJanitorService creates a new cache janitor
func NewJanitorService(cache repository.CacheRepository, idleDays int, logger *zap.Logger) *JanitorService {
	return &JanitorService{
		cache:    cache,
		idleDays: idleDays,
		logger:   logger,
	}
}

// EvictIdle removes cache entries unused for longer than the idle window
func (s *JanitorService) EvictIdle() error {
	if s.idleDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -s.idleDays)
	s.logger.Info("Starting cache eviction", zap.Int("idle_days", s.idleDays))

	removed, err := s.cache.DeleteIdle(cutoff)
	if err != nil {
		s.logger.Error("Failed to evict idle cache entries", zap.Error(err))
		return err
	}

	s.logger.Info("Cache eviction completed", zap.Int64("removed", removed))
	return nil
}
