package postgres

import (
	"testing"
	"time"

	"tangkhul/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCacheRepo_Get(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		expectedNil   bool
		expectedError bool
	}{
		{
			name: "cache hit",
			mockRows: sqlmock.NewRows([]string{
				"id", "text_hash", "source_language", "target_language",
				"translated_text", "confidence", "method", "hit_count",
				"last_used_at", "metadata", "created_at",
			}).AddRow(1, "abc123", "english", "tangkhul",
				"Ngala", 100, "exact_match", 5,
				time.Now(), []byte(`{"entry_id": 1}`), time.Now()),
			expectedNil: false,
		},
		{
			name: "cache miss",
			mockRows: sqlmock.NewRows([]string{
				"id", "text_hash", "source_language", "target_language",
				"translated_text", "confidence", "method", "hit_count",
				"last_used_at", "metadata", "created_at",
			}),
			expectedNil: true,
		},
		{
			name: "bad metadata json",
			mockRows: sqlmock.NewRows([]string{
				"id", "text_hash", "source_language", "target_language",
				"translated_text", "confidence", "method", "hit_count",
				"last_used_at", "metadata", "created_at",
			}).AddRow(1, "abc123", "english", "tangkhul",
				"Ngala", 100, "exact_match", 5,
				time.Now(), []byte(`{broken`), time.Now()),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewCacheRepo(db)

			mock.ExpectQuery("SELECT (.+) FROM cache_entries WHERE text_hash = \\$1").
				WithArgs("abc123", "english", "tangkhul").
				WillReturnRows(tt.mockRows)

			entry, err := repo.Get("abc123", "english", "tangkhul")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, entry)
			} else {
				assert.NotNil(t, entry)
				assert.Equal(t, "Ngala", entry.TranslatedText)
				assert.Equal(t, domain.MethodExactMatch, entry.Method)
				assert.Equal(t, float64(1), entry.Metadata["entry_id"])
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCacheRepo_RecordHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCacheRepo(db)

	mock.ExpectExec("UPDATE cache_entries SET hit_count = hit_count \\+ 1").
		WithArgs("abc123", "english", "tangkhul").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.RecordHit("abc123", "english", "tangkhul")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepo_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCacheRepo(db)

	entry := &domain.CacheEntry{
		TextHash:       "abc123",
		SourceLanguage: "english",
		TargetLanguage: "tangkhul",
		TranslatedText: "Ngala",
		Confidence:     100,
		Method:         domain.MethodExactMatch,
		Metadata:       map[string]any{"entry_id": 1},
	}

	mock.ExpectExec("INSERT INTO cache_entries (.+) ON CONFLICT").
		WithArgs("abc123", "english", "tangkhul", "Ngala", 100, "exact_match", []byte(`{"entry_id":1}`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Upsert(entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepo_DeleteIdle(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCacheRepo(db)

	cutoff := time.Now().AddDate(0, 0, -90)
	mock.ExpectExec("DELETE FROM cache_entries WHERE last_used_at < \\$1").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteIdle(cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
