package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/darbotlabs/ufodoctor/internal/domain"
)

const (
	// DefaultTimeout bounds the blocking probe call; expiry is reported as
	// a connectivity failure, never a hang.
	DefaultTimeout = 30 * time.Second

	probePrompt    = "Say hello"
	probeMaxTokens = 10

	defaultAPIVersion  = "2024-05-01"
	defaultOpenAIBase  = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-3.5-turbo"

	maxErrorBody = 4 << 10
)

// HTTPProber implements domain.ChatProber with one minimal chat-completion
// request per call. The request shape is provider-specific (Azure
// deployment endpoint vs. direct OpenAI endpoint) but semantically
// identical: a single user message with a small output cap.
type HTTPProber struct {
	client     *http.Client
	openAIBase string
}

// New creates a prober with the default timeout.
func New() *HTTPProber {
	return NewWithClient(&http.Client{Timeout: DefaultTimeout})
}

// NewWithClient creates a prober using the given client. Tests inject a
// client pointed at an httptest server.
func NewWithClient(client *http.Client) *HTTPProber {
	return &HTTPProber{client: client, openAIBase: defaultOpenAIBase}
}

// WithOpenAIBase overrides the direct-provider base URL.
func (p *HTTPProber) WithOpenAIBase(base string) *HTTPProber {
	p.openAIBase = strings.TrimRight(base, "/")
	return p
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model,omitempty"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Probe issues the minimal request implied by the agent's API_TYPE.
// Provider types with no probe defined come back SKIPPED, not failed.
func (p *HTTPProber) Probe(ctx context.Context, cfg domain.AgentConfig) domain.ConnectivityResult {
	apiType := strings.ToLower(cfg[domain.FieldAPIType])
	switch apiType {
	case "azure", "aoai":
		return p.probeAzure(ctx, cfg)
	case "openai":
		return p.probeOpenAI(ctx, cfg)
	default:
		return domain.ConnectivityResult{
			Outcome: domain.ConnectivitySkipped,
			Detail:  fmt.Sprintf("API type %q is not supported for connectivity testing", apiType),
		}
	}
}

func (p *HTTPProber) probeAzure(ctx context.Context, cfg domain.AgentConfig) domain.ConnectivityResult {
	version := cfg[domain.FieldAPIVersion]
	if version == "" {
		version = defaultAPIVersion
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(cfg[domain.FieldAPIBase], "/"),
		cfg[domain.FieldAPIDeploymentID],
		version,
	)
	headers := map[string]string{"api-key": cfg[domain.FieldAPIKey]}
	return p.send(ctx, url, headers, chatRequest{
		Messages:  []chatMessage{{Role: "user", Content: probePrompt}},
		MaxTokens: probeMaxTokens,
	})
}

func (p *HTTPProber) probeOpenAI(ctx context.Context, cfg domain.AgentConfig) domain.ConnectivityResult {
	model := cfg[domain.FieldAPIModel]
	if model == "" {
		model = defaultOpenAIModel
	}
	headers := map[string]string{"Authorization": "Bearer " + cfg[domain.FieldAPIKey]}
	return p.send(ctx, p.openAIBase+"/chat/completions", headers, chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: probePrompt}},
		MaxTokens: probeMaxTokens,
	})
}

func (p *HTTPProber) send(ctx context.Context, url string, headers map[string]string, payload chatRequest) domain.ConnectivityResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(fmt.Sprintf("encoding request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return failure(fmt.Sprintf("reading response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Sprintf("Error code: %d - %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil || len(parsed.Choices) == 0 {
		return failure("malformed completion response")
	}

	return domain.ConnectivityResult{
		Outcome:         domain.ConnectivitySuccess,
		ResponsePreview: strings.TrimSpace(parsed.Choices[0].Message.Content),
	}
}

func failure(rawError string) domain.ConnectivityResult {
	return domain.ConnectivityResult{
		Outcome:  domain.ConnectivityFailure,
		RawError: rawError,
	}
}
