package http

import (
	"context"
	"encoding/json"
	"time"

	"wiki-quiz-service/internal/app"
	"wiki-quiz-service/internal/domain"
	"wiki-quiz-service/internal/infra/memory"
)

type stubGenerator struct {
	rec domain.QuizRecordRaw
	err error
}

func (g stubGenerator) Generate(_ context.Context, url string) (domain.QuizRecordRaw, error) {
	if g.err != nil {
		return domain.QuizRecordRaw{}, g.err
	}
	rec := g.rec
	rec.URL = url
	return rec, nil
}

func newTestService(gen app.Generator, seed ...domain.QuizRecordRaw) *app.QuizService {
	store := memory.NewQuizStore(seed...)
	quizRepo := memory.NewQuizRepository(store, time.Minute)
	return app.NewQuizService(gen, store, quizRepo, memory.NewSessionStore())
}

// sampleQuiz is stored the way older rows were: both fields double-encoded.
func sampleQuiz() domain.QuizRecordRaw {
	quiz, _ := json.Marshal(`[{"question":"What is 2 + 2?","options":["3","4","5"],"correct_answer":1},{"question":"Capital of France?","options":["Paris","Rome"],"answer":"Paris","level":"Easy"}]`)
	topics, _ := json.Marshal(`{"Arithmetic":"https://en.wikipedia.org/wiki/Arithmetic"}`)
	return domain.QuizRecordRaw{
		URL:           "https://en.wikipedia.org/wiki/Arithmetic",
		Title:         "Arithmetic",
		Summary:       "Arithmetic is an elementary branch of mathematics.",
		Quiz:          quiz,
		RelatedTopics: topics,
	}
}
