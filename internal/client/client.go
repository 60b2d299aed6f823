package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"wiki-quiz-service/internal/domain"
)

// APIError is a non-200 reply from the quiz service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quiz service returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the quiz service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Generate asks the service to build a quiz from an article URL.
func (c *Client) Generate(ctx context.Context, url string) (domain.QuizRecord, error) {
	body, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return domain.QuizRecord{}, err
	}
	var quiz domain.QuizRecord
	err = c.do(ctx, http.MethodPost, "/api/generate", bytes.NewReader(body), &quiz)
	return quiz, err
}

// History lists stored quizzes, newest first.
func (c *Client) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	err := c.do(ctx, http.MethodGet, "/api/history", nil, &entries)
	return entries, err
}

// Quiz fetches one stored quiz.
func (c *Client) Quiz(ctx context.Context, id int64) (domain.QuizRecord, error) {
	var quiz domain.QuizRecord
	err := c.do(ctx, http.MethodGet, "/api/quiz/"+strconv.FormatInt(id, 10), nil, &quiz)
	return quiz, err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		var reply struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &reply) == nil && reply.Error != "" {
			msg = reply.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
