package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient("http://generator.test/api/", &http.Client{Transport: rt})
}

func reply(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestGeneratePostsURL(t *testing.T) {
	var seenPath, seenURL string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenPath = r.URL.Path
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		seenURL = req.URL
		return reply(http.StatusOK, `{"title":"Alan Turing","summary":"s","quiz":[{"question":"Q?"}],"related_topics":"{\"Enigma\":\"u\"}"}`), nil
	}))

	rec, err := client.Generate(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if seenPath != "/api/generate" {
		t.Fatalf("expected /api/generate, got %q", seenPath)
	}
	if seenURL != "https://en.wikipedia.org/wiki/Alan_Turing" {
		t.Fatalf("expected url to be posted, got %q", seenURL)
	}
	if rec.Title != "Alan Turing" {
		t.Fatalf("expected title, got %q", rec.Title)
	}
	if rec.RelatedTopics[0] != '"' {
		t.Fatalf("expected related_topics passed through undecoded, got %s", rec.RelatedTopics)
	}
}

func TestGenerateSurfacesRemoteError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return reply(http.StatusInternalServerError, `{"error":"LLM generation failed"}`), nil
	}))

	_, err := client.Generate(context.Background(), "https://en.wikipedia.org/wiki/X")
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Message != "LLM generation failed" || remote.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected remote error: %+v", remote)
	}
}

func TestGenerateErrorFieldOnOK(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return reply(http.StatusOK, `{"error":"could not scrape"}`), nil
	}))

	_, err := client.Generate(context.Background(), "https://en.wikipedia.org/wiki/X")
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
}

func TestGenerateNonOKWithoutBody(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return reply(http.StatusBadGateway, ""), nil
	}))

	if _, err := client.Generate(context.Background(), "https://en.wikipedia.org/wiki/X"); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestGenerateTransportErrorNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection refused")
	}))

	if _, err := client.Generate(context.Background(), "https://en.wikipedia.org/wiki/X"); err == nil {
		t.Fatalf("expected transport error")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestGenerateJSONDecodeError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return reply(http.StatusOK, "not-json"), nil
	}))

	if _, err := client.Generate(context.Background(), "https://en.wikipedia.org/wiki/X"); err == nil {
		t.Fatalf("expected JSON decode error")
	}
}
