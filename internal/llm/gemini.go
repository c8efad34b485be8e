package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/promptforge/promptforge-backend/config"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// GeminiProvider talks to the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	model      string
	httpClient *resty.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewGeminiProvider(cfg config.AIConfig) (*GeminiProvider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, &config.ConfigurationError{Reason: "GEMINI_API_KEY is empty"}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-goog-api-key", cfg.GeminiAPIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &GeminiProvider{model: model, httpClient: client}, nil
}

func (p *GeminiProvider) Name() string { return config.ProviderGemini }

func (p *GeminiProvider) Chat(ctx context.Context, system string, history []Message) (string, error) {
	req := geminiRequest{Contents: make([]geminiContent, 0, len(history))}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range history {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	return p.generate(ctx, req)
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
}

func (p *GeminiProvider) generate(ctx context.Context, req geminiRequest) (string, error) {
	var (
		out    geminiResponse
		apiErr geminiErrorResponse
	)
	httpResp, err := p.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		SetPathParam("model", p.model).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if httpResp.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini error (%d %s): %s", httpResp.StatusCode(), apiErr.Error.Status, apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini error (%d): %s", httpResp.StatusCode(), httpResp.String())
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked prompt: %s", out.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned empty content (finish reason %q)", out.Candidates[0].FinishReason)
	}
	return sb.String(), nil
}
