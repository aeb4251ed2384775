package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client talks to a local Ollama server. Responses arrive as a stream of
// line-delimited JSON fragments; Complete reassembles them in arrival order.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

type generateRequest struct {
	Model  string  `json:"model"`
	System string  `json:"system,omitempty"`
	Prompt string  `json:"prompt"`
	Format string  `json:"format,omitempty"`
	Stream bool    `json:"stream"`
	Options options `json:"options,omitempty"`
}

type options struct {
	Temperature float32 `json:"temperature"`
}

type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func NewClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger,
	}
}

// Complete implements llm.Completer by streaming /api/generate and
// concatenating successive response fragments until the stream ends.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()

	reqBody, err := json.Marshal(generateRequest{
		Model:   c.model,
		System:  system,
		Prompt:  user,
		Format:  "json",
		Stream:  true,
		Options: options{Temperature: 0},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("ollama response body close error", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, body)
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var chunk generateChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			return "", fmt.Errorf("parse ollama chunk: %w", err)
		}
		full.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read ollama stream: %w", err)
	}

	c.log.Info("ollama.complete.ok",
		"model", c.model,
		"content_len", full.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(full.String()), nil
}
