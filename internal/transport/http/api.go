package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"wiki-quiz-service/internal/app"
)

// API serves the quiz REST endpoints.
type API struct {
	service *app.QuizService
}

func NewAPI(service *app.QuizService) *API {
	return &API{service: service}
}

type generateRequest struct {
	URL string `json:"url"`
}

// HandleGenerate creates a quiz from a source article URL.
func (a *API) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	quiz, err := a.service.Generate(r.Context(), req.URL)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to generate quiz", Detail: err.Error()})
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// HandleHistory lists previously generated quizzes.
func (a *API) HandleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := a.service.History(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleQuiz returns one stored quiz, normalized for review.
func (a *API) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(chi.URLParam(r, "quizID"), 10, 64)
	if err != nil || quizID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quiz id must be a positive integer"})
		return
	}

	quiz, err := a.service.Quiz(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}
