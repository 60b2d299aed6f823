package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"wiki-quiz-service/internal/app"
	"wiki-quiz-service/internal/domain"
)

// WSHandler lets one client take one quiz per connection.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Index  int    `json:"index"`
	Option string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// questionView hides the correct answer until the question has been answered
// or the session is finished.
type questionView struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Difficulty  string   `json:"difficulty"`
	Answer      *string  `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Correct     *bool    `json:"correct,omitempty"`
}

type sessionView struct {
	ID           string         `json:"id"`
	QuizID       int64          `json:"quizId"`
	CurrentIndex int            `json:"currentIndex"`
	Total        int            `json:"total"`
	Phase        domain.Phase   `json:"phase"`
	Answers      map[int]string `json:"answers"`
	Questions    []questionView `json:"questions"`
}

func toSessionView(state domain.SessionState) sessionView {
	questions := make([]questionView, 0, len(state.Questions))
	for i, q := range state.Questions {
		view := questionView{Text: q.Text, Options: q.Options, Difficulty: q.Difficulty}
		_, answered := state.Answers[i]
		if answered || state.Phase == domain.PhaseFinished {
			correct := app.IsCorrect(q, state.Answers, i)
			view.Answer = q.Answer
			view.Explanation = q.Explanation
			view.Correct = &correct
		}
		questions = append(questions, view)
	}
	return sessionView{
		ID:           state.ID,
		QuizID:       state.QuizID,
		CurrentIndex: state.CurrentIndex,
		Total:        len(state.Questions),
		Phase:        state.Phase,
		Answers:      state.Answers,
		Questions:    questions,
	}
}

// ServeWS upgrades HTTP requests to websockets and drives a quiz session from
// the client's messages. The session ends when the connection closes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(r.URL.Query().Get("quizId"), 10, 64)
	if err != nil || quizID <= 0 {
		http.Error(w, "missing or invalid quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	state, err := h.service.StartSession(ctx, quizID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer func() {
		if err := h.service.EndSession(context.Background(), state.ID); err != nil {
			log.Printf("ws end session %s: %v", state.ID, err)
		}
	}()

	if err := conn.WriteJSON(outboundMessage[sessionView]{Type: "session", Payload: toSessionView(state)}); err != nil {
		log.Printf("ws write error: %v", err)
		return
	}

	// The read loop is the session's only writer, so operations stay serialized.
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		reply := h.dispatch(ctx, state.ID, inbound)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("ws write error: %v", err)
			return
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, sessionID string, inbound inboundMessage) outboundMessage[any] {
	var (
		state domain.SessionState
		err   error
	)
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid select payload")
		}
		state, err = h.service.SelectAnswer(ctx, sessionID, payload.Index, payload.Option)
	case "next":
		state, err = h.service.Advance(ctx, sessionID)
	case "previous":
		state, err = h.service.Retreat(ctx, sessionID)
	case "reset":
		state, err = h.service.Reset(ctx, sessionID)
	case "score":
		score, err := h.service.Score(ctx, sessionID)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "score", Payload: score}
	default:
		return errorMessage("unsupported message type")
	}
	if err != nil {
		return errorMessage(err.Error())
	}
	return outboundMessage[any]{Type: "session", Payload: toSessionView(state)}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
