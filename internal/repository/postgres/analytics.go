package postgres

import (
	"database/sql"

	"tangkhul/internal/domain"
)

// AnalyticsRepo implements repository.AnalyticsRepository
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo creates a new analytics repository
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// LogRequest appends one resolution attempt to the request log
func (r *AnalyticsRepo) LogRequest(rec *domain.RequestLog) error {
	query := `
		INSERT INTO request_log
			(query, source_language, target_language, method,
			 confidence, latency_ms, cache_hit, user_id, failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
	`
	_, err := r.db.Exec(query,
		rec.Query, rec.SourceLanguage, rec.TargetLanguage, string(rec.Method),
		rec.Confidence, rec.LatencyMs, rec.CacheHit, rec.UserID, rec.Failed,
	)
	return err
}
