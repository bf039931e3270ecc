package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr string
	BotToken string // optional; Telegram surface is disabled when empty
	Database DatabaseConfig
	Scoring  Scoring
	Cache    CacheConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Scoring carries the confidence-model and cascade constants. The vote
// weights and thresholds are tunable without touching cascade logic.
type Scoring struct {
	ExpertWeight      int
	ReviewerWeight    int
	ContributorWeight int

	StrongAgreement   float64 // agreement ratio for the top consensus score
	ModerateAgreement float64

	StrongConsensusScore   int
	ModerateConsensusScore int
	WeakConsensusScore     int
	ConsensusMinScore      float64 // stage filter on stored agreement score, 0-100

	CandidateMinConfidence int // similarity pool filter on stored confidence

	SimilarityBase      int
	SimilarityRange     int
	SimilarityThreshold float64
	SuggestionThreshold float64
	PoolSize            int

	PartialCap   int
	DefaultScore int

	GrammarBoost float64
	GoldenFloor  int
}

// CacheConfig controls the cache janitor's eviction policy
type CacheConfig struct {
	IdleDays int // 0 disables eviction
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "tangkhul"),
			User:     getEnv("DB_USER", "tangkhul"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Scoring: Scoring{
			ExpertWeight:           getEnvInt("EXPERT_VOTE_WEIGHT", 3),
			ReviewerWeight:         getEnvInt("REVIEWER_VOTE_WEIGHT", 2),
			ContributorWeight:      getEnvInt("CONTRIBUTOR_VOTE_WEIGHT", 1),
			StrongAgreement:        getEnvFloat("STRONG_AGREEMENT_RATIO", 0.9),
			ModerateAgreement:      getEnvFloat("MODERATE_AGREEMENT_RATIO", 0.7),
			StrongConsensusScore:   getEnvInt("STRONG_CONSENSUS_SCORE", 95),
			ModerateConsensusScore: getEnvInt("MODERATE_CONSENSUS_SCORE", 85),
			WeakConsensusScore:     getEnvInt("WEAK_CONSENSUS_SCORE", 75),
			ConsensusMinScore:      getEnvFloat("CONSENSUS_MIN_SCORE", 70),
			CandidateMinConfidence: getEnvInt("CANDIDATE_MIN_CONFIDENCE", 70),
			SimilarityBase:         getEnvInt("SIMILARITY_BASE_SCORE", 75),
			SimilarityRange:        getEnvInt("SIMILARITY_SCORE_RANGE", 20),
			SimilarityThreshold:    getEnvFloat("SIMILARITY_THRESHOLD", 0.8),
			SuggestionThreshold:    getEnvFloat("SUGGESTION_THRESHOLD", 0.2),
			PoolSize:               getEnvInt("SIMILARITY_POOL_SIZE", 200),
			PartialCap:             getEnvInt("PARTIAL_SCORE_CAP", 60),
			DefaultScore:           getEnvInt("DEFAULT_SCORE", 40),
			GrammarBoost:           getEnvFloat("GRAMMAR_BOOST", 1.2),
			GoldenFloor:            getEnvInt("GOLDEN_FLOOR", 95),
		},
		Cache: CacheConfig{
			IdleDays: getEnvInt("CACHE_IDLE_DAYS", 90),
		},
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
