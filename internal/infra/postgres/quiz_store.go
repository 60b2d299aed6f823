package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"wiki-quiz-service/internal/domain"
)

// QuizStore keeps generated quizzes in the quizzes table. Quizzes are stored
// as JSONB; rows written by older releases may hold a JSON string inside the
// JSONB value, which is returned untouched for the caller to decode.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

const upsertQuizSQL = `
INSERT INTO quizzes (url, title, summary, quiz, related_topics)
VALUES ($1, $2, $3, $4::jsonb, $5::jsonb)
ON CONFLICT (url) DO UPDATE SET
    title = EXCLUDED.title,
    summary = EXCLUDED.summary,
    quiz = EXCLUDED.quiz,
    related_topics = EXCLUDED.related_topics,
    updated_at = CURRENT_TIMESTAMP
RETURNING id`

// SaveQuiz inserts a quiz or replaces the one stored for the same URL.
func (s *QuizStore) SaveQuiz(ctx context.Context, rec domain.QuizRecordRaw) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, upsertQuizSQL,
		rec.URL, rec.Title, rec.Summary,
		jsonText(rec.Quiz, "[]"), jsonText(rec.RelatedTopics, "{}"),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save quiz: %w", err)
	}
	return id, nil
}

// ListQuizzes returns quiz summaries, newest first.
func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, url, title, created_at FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return entries, nil
}

// LoadQuiz reads one quiz by ID.
func (s *QuizStore) LoadQuiz(ctx context.Context, quizID int64) (domain.QuizRecordRaw, error) {
	var (
		rec           domain.QuizRecordRaw
		summary       *string
		quiz, related []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, url, title, summary, quiz::text, related_topics::text, created_at FROM quizzes WHERE id=$1`,
		quizID,
	).Scan(&rec.ID, &rec.URL, &rec.Title, &summary, &quiz, &related, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizRecordRaw{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.QuizRecordRaw{}, fmt.Errorf("load quiz: %w", err)
	}
	if summary != nil {
		rec.Summary = *summary
	}
	rec.Quiz = json.RawMessage(quiz)
	rec.RelatedTopics = json.RawMessage(related)
	return rec, nil
}

func jsonText(raw json.RawMessage, empty string) string {
	if len(raw) == 0 {
		return empty
	}
	return string(raw)
}
