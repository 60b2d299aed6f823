package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketQuizFlow(t *testing.T) {
	service := newTestService(stubGenerator{}, sampleQuiz())
	server := httptest.NewServer(NewRouter(service, RouterOptions{}))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?quizId=1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect the initial session first, with answers hidden.
	first := readNext(t, conn, "session")
	questions := first.Payload["questions"].([]any)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if _, ok := questions[0].(map[string]any)["answer"]; ok {
		t.Fatalf("expected answer hidden before answering, got %+v", questions[0])
	}

	send(t, conn, "select", map[string]any{"index": 0, "option": "4"})
	selected := readNext(t, conn, "session")
	q0 := selected.Payload["questions"].([]any)[0].(map[string]any)
	if q0["answer"] != "4" || q0["correct"] != true {
		t.Fatalf("expected revealed correct answer, got %+v", q0)
	}

	send(t, conn, "next", nil)
	moved := readNext(t, conn, "session")
	if moved.Payload["currentIndex"] != float64(1) {
		t.Fatalf("expected index 1, got %v", moved.Payload["currentIndex"])
	}

	send(t, conn, "select", map[string]any{"index": 1, "option": "Rome"})
	readNext(t, conn, "session")
	send(t, conn, "next", nil)
	finished := readNext(t, conn, "session")
	if finished.Payload["phase"] != "finished" {
		t.Fatalf("expected finished phase, got %v", finished.Payload["phase"])
	}

	send(t, conn, "score", nil)
	score := readNext(t, conn, "score")
	if score.Payload["correctCount"] != float64(1) || score.Payload["total"] != float64(2) || score.Payload["percentage"] != float64(50) {
		t.Fatalf("unexpected score %+v", score.Payload)
	}

	// Finished sessions reject navigation until reset.
	send(t, conn, "next", nil)
	readNext(t, conn, "error")

	send(t, conn, "reset", nil)
	reset := readNext(t, conn, "session")
	if reset.Payload["phase"] != "active" || reset.Payload["currentIndex"] != float64(0) {
		t.Fatalf("expected fresh session after reset, got %+v", reset.Payload)
	}
}

func TestWebSocketUnknownQuiz(t *testing.T) {
	service := newTestService(stubGenerator{})
	server := httptest.NewServer(NewRouter(service, RouterOptions{}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws?quizId=9", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msg := readNext(t, conn, "error")
	if msg.Payload["message"] == "" {
		t.Fatalf("expected error message")
	}
}

func TestWebSocketRejectsMissingQuizID(t *testing.T) {
	service := newTestService(stubGenerator{})
	server := httptest.NewServer(NewRouter(service, RouterOptions{}))
	defer server.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+server.URL[len("http"):]+"/ws", nil)
	if err == nil {
		t.Fatalf("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != 400 {
		t.Fatalf("expected 400 response, got %+v", resp)
	}
}

type testMessage struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn, expect string) testMessage {
	t.Helper()
	var msg testMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%+v)", expect, msg.Type, msg.Payload)
	}
	return msg
}
