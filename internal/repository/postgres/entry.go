package postgres

import (
	"database/sql"

	"tangkhul/internal/domain"
)

// EntryRepo implements repository.EntryRepository
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new entry repository
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

const entryColumns = `id, source_text, target_text, normalized_source, normalized_target,
		source_language, target_language, status, confidence_score,
		grammar_tags, frequency_tag, word_count, golden, created_at`

// FindExact returns the best approved entry for the normalized query
func (r *EntryRepo) FindExact(normalized, sourceLang, targetLang string) (*domain.TranslationEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM translation_entries
		WHERE normalized_source = $1
			AND source_language = $2
			AND target_language = $3
			AND status IN ('approved', 'golden')
		ORDER BY confidence_score DESC, created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(query, normalized, sourceLang, targetLang))
}

// FindCandidates returns the similarity-scan pool for the language pair
func (r *EntryRepo) FindCandidates(sourceLang, targetLang string, minConfidence, limit int) ([]domain.TranslationEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM translation_entries
		WHERE source_language = $1
			AND target_language = $2
			AND status IN ('approved', 'golden')
			AND confidence_score >= $3
		ORDER BY frequency_tag DESC, confidence_score DESC, id
		LIMIT $4
	`
	rows, err := r.db.Query(query, sourceLang, targetLang, minConfidence, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TranslationEntry
	for rows.Next() {
		var e domain.TranslationEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// FindWord returns the most frequent approved single-word entry for a token
func (r *EntryRepo) FindWord(token, sourceLang, targetLang string) (*domain.TranslationEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM translation_entries
		WHERE normalized_source = $1
			AND source_language = $2
			AND target_language = $3
			AND status IN ('approved', 'golden')
			AND word_count = 1
		ORDER BY frequency_tag DESC, confidence_score DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(query, token, sourceLang, targetLang))
}

// CountApproved reports the approved corpus size for the language pair
func (r *EntryRepo) CountApproved(sourceLang, targetLang string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM translation_entries
		WHERE source_language = $1
			AND target_language = $2
			AND status IN ('approved', 'golden')
	`
	var count int
	err := r.db.QueryRow(query, sourceLang, targetLang).Scan(&count)
	return count, err
}

func (r *EntryRepo) scanOne(row *sql.Row) (*domain.TranslationEntry, error) {
	var e domain.TranslationEntry
	err := row.Scan(
		&e.ID, &e.SourceText, &e.TargetText, &e.NormalizedSource, &e.NormalizedTarget,
		&e.SourceLanguage, &e.TargetLanguage, &e.Status, &e.ConfidenceScore,
		&e.GrammarTags, &e.FrequencyTag, &e.WordCount, &e.Golden, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func scanEntry(rows *sql.Rows, e *domain.TranslationEntry) error {
	return rows.Scan(
		&e.ID, &e.SourceText, &e.TargetText, &e.NormalizedSource, &e.NormalizedTarget,
		&e.SourceLanguage, &e.TargetLanguage, &e.Status, &e.ConfidenceScore,
		&e.GrammarTags, &e.FrequencyTag, &e.WordCount, &e.Golden, &e.CreatedAt,
	)
}
