package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/focusd/internal/domain"
	"github.com/google/uuid"
)

// Classifier turns a captured image into a classification verdict.
type Classifier interface {
	// Classify sends the image for analysis and returns the derived
	// classification result.
	Classify(ctx context.Context, imagePath string) (*domain.ClassificationResult, error)

	// Available checks whether the vision endpoint is reachable.
	Available(ctx context.Context) bool
}

// Config holds the vision subsystem settings.
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	MaxTokens  int
}

// DefaultConfig returns a Config with sensible defaults for an
// OpenAI-compatible endpoint.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://api.openai.com/v1",
		Model:      "gpt-4o",
		TimeoutMs:  30000,
		MaxRetries: 1,
		MaxTokens:  300,
	}
}

// openaiClient implements Classifier against an OpenAI-compatible
// /chat/completions endpoint with image input.
type openaiClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
	now      func() time.Time
}

// NewOpenAIClient creates a Classifier talking to an OpenAI-compatible API.
func NewOpenAIClient(cfg Config, observer Observer) Classifier {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &openaiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		now:      time.Now,
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type textPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imagePart struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openaiClient) Classify(ctx context.Context, imagePath string) (*domain.ClassificationResult, error) {
	start := c.now()
	requestID := uuid.New().String()

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []any{
				textPart{Type: "text", Text: screenAnalysisPrompt},
				imagePart{Type: "image_url", ImageURL: imageURL{
					URL:    fmt.Sprintf("data:%s;base64,%s", mimeType(imagePath), encoded),
					Detail: "high",
				}},
			}},
		},
		MaxTokens: c.cfg.MaxTokens,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		content, err := c.doRequest(ctx, body)
		if err == nil {
			res := buildResult(content, imagePath, c.now())
			c.observer.OnCallComplete(CallEvent{
				RequestID: requestID,
				Model:     c.cfg.Model,
				ImagePath: imagePath,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return res, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout.
		if ctx.Err() != nil {
			break
		}
	}

	finalErr := classifyFailure(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		RequestID: requestID,
		Model:     c.cfg.Model,
		ImagePath: imagePath,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

// buildResult derives the structured verdict from the raw analysis text.
func buildResult(content, imagePath string, ts time.Time) *domain.ClassificationResult {
	return &domain.ClassificationResult{
		Content:            content,
		Timestamp:          ts,
		ImagePath:          imagePath,
		IsProductive:       AssessProductivity(content),
		DetectedApps:       ExtractApplications(content),
		DetectedActivities: ExtractActivities(content),
	}
}

func (c *openaiClient) doRequest(ctx context.Context, body chatRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision endpoint returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrInvalidOutput)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openaiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

func classifyFailure(ctx context.Context, lastErr error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	if isConnectionError(lastErr) {
		return ErrUnavailable
	}
	if errors.Is(lastErr, ErrInvalidOutput) {
		return lastErr
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
