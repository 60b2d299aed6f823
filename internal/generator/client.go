package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wiki-quiz-service/internal/domain"
)

// RemoteError carries the message of a generator {"error": ...} reply.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("generator error (status %d): %s", e.StatusCode, e.Message)
}

// Client calls the external quiz generator. Each call is attempted once.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type generateRequest struct {
	URL string `json:"url"`
}

type generateResponse struct {
	domain.QuizRecordRaw
	Error string `json:"error"`
}

// Generate asks the generator for a quiz built from the article at url.
func (c *Client) Generate(ctx context.Context, url string) (domain.QuizRecordRaw, error) {
	body, err := json.Marshal(generateRequest{URL: url})
	if err != nil {
		return domain.QuizRecordRaw{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return domain.QuizRecordRaw{}, fmt.Errorf("generate quiz: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.QuizRecordRaw{}, fmt.Errorf("generate quiz: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.QuizRecordRaw{}, fmt.Errorf("generate quiz: read body: %w", err)
	}

	var payload generateResponse
	decodeErr := json.Unmarshal(data, &payload)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && payload.Error != "" {
			return domain.QuizRecordRaw{}, &RemoteError{StatusCode: resp.StatusCode, Message: payload.Error}
		}
		return domain.QuizRecordRaw{}, fmt.Errorf("generate quiz: generator returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return domain.QuizRecordRaw{}, fmt.Errorf("generate quiz: decode response: %w", decodeErr)
	}
	if payload.Error != "" {
		return domain.QuizRecordRaw{}, &RemoteError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return payload.QuizRecordRaw, nil
}
