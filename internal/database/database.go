package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "quizforge_user")
	password := getEnv("DB_PASSWORD", "quizforge_password")
	dbname := getEnv("DB_NAME", "quizforge")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS generation_batches (
		id                 BIGSERIAL PRIMARY KEY,
		language           VARCHAR(16) NOT NULL DEFAULT 'en',
		source_chars       INT NOT NULL DEFAULT 0,
		cloze_count        INT NOT NULL DEFAULT 0,
		mcq_count          INT NOT NULL DEFAULT 0,
		short_answer_count INT NOT NULL DEFAULT 0,
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_batches_created ON generation_batches(created_at);

	CREATE TABLE IF NOT EXISTS generated_questions (
		id        BIGSERIAL PRIMARY KEY,
		batch_id  BIGINT NOT NULL REFERENCES generation_batches(id) ON DELETE CASCADE,
		kind      VARCHAR(20) NOT NULL,
		question  TEXT NOT NULL,
		answer    TEXT,
		choices   TEXT,
		position  INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_batch ON generated_questions(batch_id);
	CREATE INDEX IF NOT EXISTS idx_questions_kind ON generated_questions(kind);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
