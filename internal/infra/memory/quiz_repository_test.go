package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wiki-quiz-service/internal/domain"
)

func TestQuizRepositoryCaches(t *testing.T) {
	store := NewQuizStore(sampleQuiz())
	loader := &countingLoader{QuizLoader: store}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryForgetReloads(t *testing.T) {
	loader := &countingLoader{QuizLoader: NewQuizStore(sampleQuiz())}
	repo := NewQuizRepository(loader, time.Minute)

	_, _ = repo.GetQuiz(context.Background(), 1)
	repo.Forget(context.Background(), 1)
	_, _ = repo.GetQuiz(context.Background(), 1)
	if loader.calls != 2 {
		t.Fatalf("expected reload after forget, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryExpires(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	loader := &countingLoader{QuizLoader: NewQuizStore(sampleQuiz())}
	repo := NewQuizRepository(loader, time.Minute)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuiz(context.Background(), 1)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuiz(context.Background(), 1)
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryPropagatesNotFound(t *testing.T) {
	repo := NewQuizRepository(NewQuizStore(), time.Minute)
	if _, err := repo.GetQuiz(context.Background(), 42); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

type countingLoader struct {
	QuizLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID int64) (domain.QuizRecordRaw, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.QuizRecordRaw {
	return domain.QuizRecordRaw{
		URL:           "https://en.wikipedia.org/wiki/Alan_Turing",
		Title:         "Alan Turing",
		Summary:       "English mathematician.",
		Quiz:          json.RawMessage(`[{"question":"Born in?","options":["1912","1920"],"correct_answer":0}]`),
		RelatedTopics: json.RawMessage(`{"Enigma":"https://en.wikipedia.org/wiki/Enigma_machine"}`),
	}
}
