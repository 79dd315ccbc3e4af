package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medassist/medassist/pkg/fault"
)

// Message is a single turn in a chat completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a minimal REST client for OpenAI-compatible chat completion and
// embedding endpoints. Transient upstream failures surface as
// fault.GenerationUnavailable so callers can decide whether to retry or
// degrade.
type Client struct {
	baseURL    string
	apiKey     string
	chatModel  string
	embedModel string
	client     *http.Client
}

// Config configures the OpenAI-compatible client.
type Config struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbeddingModel,
		client:     &http.Client{Timeout: timeout},
	}
}

// ChatModel returns the configured chat completion model identifier.
func (c *Client) ChatModel() string { return c.chatModel }

// Chat sends the messages to the chat completions endpoint and returns the
// content of the first choice.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body := map[string]any{
		"model":    c.chatModel,
		"messages": messages,
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := c.postJSON(ctx, c.baseURL+"/chat/completions", body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fault.New(fault.GenerationUnavailable, "chat completion returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body := map[string]any{
		"model": c.embedModel,
		"input": text,
	}

	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}

	if err := c.postJSON(ctx, c.baseURL+"/embeddings", body, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fault.New(fault.GenerationUnavailable, "embeddings endpoint returned no vector")
	}
	return out.Data[0].Embedding, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fault.Wrap(err, fault.GenerationUnavailable, "language model request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// Read a snippet of the body for the error message
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fault.Newf(fault.GenerationUnavailable, "language model returned %s: %s", resp.Status, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fault.Wrap(err, fault.GenerationUnavailable, "decode language model response")
		}
	}
	return nil
}
