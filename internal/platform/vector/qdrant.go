package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Meta carries optional bibliographic attributes of a source document.
type Meta struct {
	Authors string `json:"authors,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    int    `json:"year,omitempty"`
	DOI     string `json:"doi,omitempty"`
	PMID    string `json:"pmid,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Hit is a single scored document returned from the index.
type Hit struct {
	DocumentID string
	Title      string
	Source     string
	SourceType string
	Content    string
	Meta       Meta
	Score      float64
}

// Store is a minimal REST client to Qdrant. It assumes cosine distance and
// creates the collection if missing.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Config configures the Qdrant client.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection if it does not exist. Qdrant
// returns 200 for an existing collection with the same schema.
func (s *Store) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

// Document is a knowledge document stored alongside its embedding.
type Document struct {
	ID         string
	Title      string
	Source     string
	SourceType string
	Content    string
	Meta       Meta
}

// Upsert writes documents and their vectors into the collection.
func (s *Store) Upsert(ctx context.Context, docs []Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents and vectors length mismatch: %d != %d", len(docs), len(vectors))
	}
	points := make([]map[string]any, len(docs))
	for i, doc := range docs {
		points[i] = map[string]any{
			"id":     doc.ID,
			"vector": vectors[i],
			"payload": map[string]any{
				"document_id": doc.ID,
				"title":       doc.Title,
				"source":      doc.Source,
				"source_type": doc.SourceType,
				"content":     doc.Content,
				"meta":        doc.Meta,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Search returns the topK nearest documents for the query vector, best
// first. A non-empty sourceType restricts results to that document type.
func (s *Store) Search(ctx context.Context, vector []float64, topK int, sourceType string) ([]Hit, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if sourceType != "" {
		req["filter"] = map[string]any{
			"must": []map[string]any{
				{"key": "source_type", "match": map[string]any{"value": sourceType}},
			},
		}
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hit := Hit{Score: r.Score}
		if v, ok := r.Payload["document_id"].(string); ok {
			hit.DocumentID = v
		}
		if v, ok := r.Payload["title"].(string); ok {
			hit.Title = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			hit.Source = v
		}
		if v, ok := r.Payload["source_type"].(string); ok {
			hit.SourceType = v
		}
		if v, ok := r.Payload["content"].(string); ok {
			hit.Content = v
		}
		if raw, ok := r.Payload["meta"]; ok {
			if data, err := json.Marshal(raw); err == nil {
				json.Unmarshal(data, &hit.Meta)
			}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
