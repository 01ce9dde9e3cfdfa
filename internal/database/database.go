package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Config holds database configuration
type Config struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadConfigFromEnv loads database configuration from environment variables
func LoadConfigFromEnv() *Config {
	return &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "devops"),
		Password:        getEnv("DB_PASSWORD", "devops_password"),
		DBName:          getEnv("DB_NAME", "devops_simulator"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
	}
}

// NewConnection creates a new database connection with the provided configuration
func NewConnection(config *Config) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[Database] Connected to %s:%s/%s", config.Host, config.Port, config.DBName)
	log.Printf("[Database] Pool config: MaxOpen=%d, MaxIdle=%d", config.MaxOpenConns, config.MaxIdleConns)

	return &DB{db}, nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[Database] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("[Database] Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// InitSchema creates database tables if they don't exist. The incident and
// crisis catalogs are immutable in-process lookup tables and are not stored.
func (db *DB) InitSchema() error {
	schema := `
	-- Players table
	CREATE TABLE IF NOT EXISTS players (
		id BIGINT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		experience INTEGER NOT NULL DEFAULT 0,
		money INTEGER NOT NULL DEFAULT 1000,
		servers INTEGER NOT NULL DEFAULT 1,
		server_health DOUBLE PRECISION NOT NULL DEFAULT 100,
		reputation INTEGER NOT NULL DEFAULT 50,
		successful_fixes INTEGER NOT NULL DEFAULT 0,
		failed_fixes INTEGER NOT NULL DEFAULT 0,
		last_activity TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Skills table (five rows per player, seeded at creation)
	CREATE TABLE IF NOT EXISTS skills (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		skill_name VARCHAR(50) NOT NULL,
		skill_level INTEGER NOT NULL DEFAULT 1,
		UNIQUE (player_id, skill_name)
	);

	-- Daily tasks table (regenerated per calendar day)
	CREATE TABLE IF NOT EXISTS daily_tasks (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		task_type VARCHAR(50) NOT NULL,
		description TEXT NOT NULL,
		target_amount INTEGER NOT NULL,
		current_amount INTEGER NOT NULL DEFAULT 0,
		reward_money INTEGER NOT NULL,
		reward_exp INTEGER NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		claimed BOOLEAN NOT NULL DEFAULT FALSE,
		date_created VARCHAR(10) NOT NULL
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_players_rating ON players(level DESC, experience DESC);
	CREATE INDEX IF NOT EXISTS idx_skills_player_id ON skills(player_id);
	CREATE INDEX IF NOT EXISTS idx_daily_tasks_player_date ON daily_tasks(player_id, date_created);
	CREATE INDEX IF NOT EXISTS idx_daily_tasks_player_type ON daily_tasks(player_id, task_type);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Println("[Database] Schema initialized with indexes")
	return nil
}
