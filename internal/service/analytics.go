package service

import (
	"tangkhul/internal/domain"
	"tangkhul/internal/repository"

	"go.uber.org/zap"
)

// AnalyticsService records resolution attempts for dashboards. Fire and
// forget: a failed write never affects the caller's result.
type AnalyticsService struct {
	repo   repository.AnalyticsRepository
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.AnalyticsRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger}
}

// Log records one resolution attempt, swallowing storage errors
func (s *AnalyticsService) Log(rec *domain.RequestLog) {
	if err := s.repo.LogRequest(rec); err != nil {
		s.logger.Warn("analytics write failed",
			zap.String("query", rec.Query),
			zap.Error(err),
		)
	}
}
