package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"wiki-quiz-service/internal/domain"
	"wiki-quiz-service/internal/infra/memory"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{QuizLoader: memory.NewQuizStore(sampleQuiz())}
	repo := NewQuizRepository(client, loader, time.Minute)

	first, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:1") {
		t.Fatalf("expected quiz:1 to be cached")
	}

	// Second call should hit cache, loader not incremented.
	second, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get cached quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if second.Title != first.Title || string(second.Quiz) != string(first.Quiz) {
		t.Fatalf("cached record differs: %+v vs %+v", second, first)
	}
}

func TestQuizRepositoryKeepsLegacyEncoding(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	legacy := sampleQuiz()
	legacy.Quiz = json.RawMessage(`"[{\"question\":\"Q?\",\"options\":[\"A\"],\"correct_answer\":0}]"`)
	repo := NewQuizRepository(newClient(mr), memory.NewQuizStore(legacy), time.Minute)

	_, _ = repo.GetQuiz(context.Background(), 1)
	cached, err := repo.GetQuiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if string(cached.Quiz) != string(legacy.Quiz) {
		t.Fatalf("expected legacy string preserved, got %s", cached.Quiz)
	}
}

func TestQuizRepositoryForget(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{QuizLoader: memory.NewQuizStore(sampleQuiz())}
	repo := NewQuizRepository(newClient(mr), loader, time.Minute)

	_, _ = repo.GetQuiz(context.Background(), 1)
	repo.Forget(context.Background(), 1)
	if mr.Exists("quiz:1") {
		t.Fatalf("expected quiz:1 to be removed")
	}
	_, _ = repo.GetQuiz(context.Background(), 1)
	if loader.calls != 2 {
		t.Fatalf("expected reload after forget, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.QuizLoader
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

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
