package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"tangkhul/internal/domain"
)

// CacheRepo implements repository.CacheRepository
type CacheRepo struct {
	db *sql.DB
}

// NewCacheRepo creates a new cache repository
func NewCacheRepo(db *sql.DB) *CacheRepo {
	return &CacheRepo{db: db}
}

// Get returns the cached resolution for the (hash, language pair) triple
func (r *CacheRepo) Get(hash, sourceLang, targetLang string) (*domain.CacheEntry, error) {
	query := `
		SELECT id, text_hash, source_language, target_language,
			translated_text, confidence, method, hit_count,
			last_used_at, metadata, created_at
		FROM cache_entries
		WHERE text_hash = $1 AND source_language = $2 AND target_language = $3
	`

	var e domain.CacheEntry
	var metadata []byte
	err := r.db.QueryRow(query, hash, sourceLang, targetLang).Scan(
		&e.ID, &e.TextHash, &e.SourceLanguage, &e.TargetLanguage,
		&e.TranslatedText, &e.Confidence, &e.Method, &e.HitCount,
		&e.LastUsedAt, &metadata, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return nil, err
		}
	}

	return &e, nil
}

// RecordHit bumps the hit count and freshness of an existing entry
func (r *CacheRepo) RecordHit(hash, sourceLang, targetLang string) error {
	query := `
		UPDATE cache_entries
		SET hit_count = hit_count + 1, last_used_at = NOW()
		WHERE text_hash = $1 AND source_language = $2 AND target_language = $3
	`
	_, err := r.db.Exec(query, hash, sourceLang, targetLang)
	return err
}

// Upsert stores a resolution result. A concurrent writer that lost the race
// lands on the conflict branch and is counted as a hit instead of erroring.
func (r *CacheRepo) Upsert(entry *domain.CacheEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cache_entries
			(text_hash, source_language, target_language,
			 translated_text, confidence, method, hit_count, last_used_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, 1, NOW(), $7)
		ON CONFLICT (text_hash, source_language, target_language)
		DO UPDATE SET hit_count = cache_entries.hit_count + 1, last_used_at = NOW()
	`
	_, err = r.db.Exec(query,
		entry.TextHash, entry.SourceLanguage, entry.TargetLanguage,
		entry.TranslatedText, entry.Confidence, entry.Method, metadata,
	)
	return err
}

// DeleteIdle evicts entries not used since the cutoff
func (r *CacheRepo) DeleteIdle(cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM cache_entries
		WHERE last_used_at < $1
	`
	res, err := r.db.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
