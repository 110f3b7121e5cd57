package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/RichardoC/askbox/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS qa_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    timestamp DATETIME NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE VIRTUAL TABLE IF NOT EXISTS qa_logs_fts USING fts4(
    question,
    answer,
    tokenize=porter
);

-- Triggers keep the FTS index in step with qa_logs
CREATE TRIGGER IF NOT EXISTS qa_logs_ai AFTER INSERT ON qa_logs BEGIN
    INSERT INTO qa_logs_fts(docid, question, answer)
    VALUES (new.id, new.question, new.answer);
END;

CREATE TRIGGER IF NOT EXISTS qa_logs_ad AFTER DELETE ON qa_logs BEGIN
    DELETE FROM qa_logs_fts WHERE docid = old.id;
END;

CREATE TRIGGER IF NOT EXISTS qa_logs_au AFTER UPDATE ON qa_logs BEGIN
    DELETE FROM qa_logs_fts WHERE docid = old.id;
    INSERT INTO qa_logs_fts(docid, question, answer)
    VALUES (new.id, new.question, new.answer);
END;`

type Database struct {
	db *sql.DB
}

func New(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// sqlite serialises writers; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (db *Database) Close() error {
	return db.db.Close()
}

// LogQuestionAnswer records one answered question.
func (db *Database) LogQuestionAnswer(ctx context.Context, question, answer string, ts time.Time) (*models.QALog, error) {
	query := `
        INSERT INTO qa_logs (question, answer, timestamp, created_at)
        VALUES (?, ?, ?, CURRENT_TIMESTAMP)
        RETURNING id, created_at`

	entry := &models.QALog{Question: question, Answer: answer, Timestamp: ts}
	err := db.db.QueryRowContext(ctx, query, question, answer, ts).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log question: %w", err)
	}
	return entry, nil
}

// SearchAnswers returns up to limit logged exchanges whose question or answer
// matches any word of query, newest first.
func (db *Database) SearchAnswers(ctx context.Context, query string, limit int) ([]models.QALog, error) {
	match := matchExpression(query)
	if match == "" {
		return []models.QALog{}, nil
	}

	rows, err := db.db.QueryContext(ctx, `
		SELECT q.id, q.question, q.answer, q.timestamp, q.created_at
		FROM qa_logs q
		JOIN qa_logs_fts fts ON q.id = fts.docid
		WHERE qa_logs_fts MATCH ?
		ORDER BY q.timestamp DESC, q.id DESC
		LIMIT ?;
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search answers: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// RecentLogs returns the newest limit entries.
func (db *Database) RecentLogs(ctx context.Context, limit int) ([]models.QALog, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, question, answer, timestamp, created_at
        FROM qa_logs
        ORDER BY timestamp DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func scanLogs(rows *sql.Rows) ([]models.QALog, error) {
	logs := make([]models.QALog, 0)
	for rows.Next() {
		var entry models.QALog
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Timestamp, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// matchExpression turns free text into an FTS4 OR query of quoted terms, so
// punctuation in user input can't break the MATCH syntax.
func matchExpression(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(words))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, `"`+w+`"`)
	}
	return strings.Join(terms, " OR ")
}
