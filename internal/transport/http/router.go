package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"wiki-quiz-service/internal/app"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	// RequestTimeout bounds REST handlers; generation can be slow.
	RequestTimeout time.Duration
}

// NewRouter mounts the REST API under /api, the quiz-taking websocket at /ws
// and a health probe at /healthz.
func NewRouter(service *app.QuizService, opts RouterOptions) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 90 * time.Second
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	api := NewAPI(service)
	ws := NewWSHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/api", func(ar chi.Router) {
		ar.Use(middleware.Timeout(opts.RequestTimeout))
		ar.Post("/generate", api.HandleGenerate)
		ar.Get("/history", api.HandleHistory)
		ar.Get("/quiz/{quizID}", api.HandleQuiz)
	})
	return r
}
