// Package assistant wraps an OpenAI-compatible chat-completions API to
// infer a title, mood, tags and insights for journal entries. It is a
// collaborator of the core, never a dependency: every caller must treat
// a failure here as "AI unavailable" and store the entry without it.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable reports that the completion service could not be used.
// Entry creation must never block on it.
var ErrUnavailable = errors.New("assistant unavailable")

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"

	requestTimeout = 30 * time.Second
	maxTokens      = 1000
	temperature    = 0.7

	maxTags = 5
)

// Assistant is a thin client over the chat-completions endpoint.
type Assistant struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model, baseURL string) (*Assistant, error) {
	if apiKey == "" {
		return nil, errors.New("api key not set")
	}
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Assistant{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

// ChatMessage is one turn of a conversation, in the wire format the
// completion API expects.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type apiResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *Assistant) complete(ctx context.Context, messages []ChatMessage) (string, error) {
	reqBody := apiRequest{
		Model:       a.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return apiResp.Choices[0].Message.Content, nil
}

// GenerateTitle asks for a short title for the entry.
func (a *Assistant) GenerateTitle(ctx context.Context, content string) (string, error) {
	out, err := a.complete(ctx, []ChatMessage{{Role: "user", Content: fmt.Sprintf(titlePrompt, content)}})
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(out), `"'`), nil
}

// MoodAnalysis is the parsed result of a mood classification.
type MoodAnalysis struct {
	Mood        string `json:"mood"`
	Themes      string `json:"themes"`
	Explanation string `json:"explanation"`
}

// AnalyzeMood classifies the emotional tone of the entry. The response
// is decoded best-effort: lines the model formats differently fall back
// to neutral defaults rather than failing.
func (a *Assistant) AnalyzeMood(ctx context.Context, content string) (MoodAnalysis, error) {
	out, err := a.complete(ctx, []ChatMessage{{Role: "user", Content: fmt.Sprintf(moodPrompt, content)}})
	if err != nil {
		return MoodAnalysis{}, err
	}
	return parseMoodResponse(out), nil
}

func parseMoodResponse(resp string) MoodAnalysis {
	analysis := MoodAnalysis{Mood: "neutral", Themes: "general"}
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Mood:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Mood:")); v != "" {
				analysis.Mood = strings.ToLower(v)
			}
		case strings.HasPrefix(line, "Themes:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Themes:")); v != "" {
				analysis.Themes = v
			}
		case strings.HasPrefix(line, "Explanation:"):
			analysis.Explanation = strings.TrimSpace(strings.TrimPrefix(line, "Explanation:"))
		}
	}
	return analysis
}

// ExtractTags asks for comma-separated tags and normalizes them to at
// most five lowercase labels.
func (a *Assistant) ExtractTags(ctx context.Context, content string) ([]string, error) {
	out, err := a.complete(ctx, []ChatMessage{{Role: "user", Content: fmt.Sprintf(tagPrompt, content)}})
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, raw := range strings.Split(out, ",") {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags, nil
}

// GenerateInsights asks for free-text commentary on the entry.
func (a *Assistant) GenerateInsights(ctx context.Context, content, date, mood string) (string, error) {
	out, err := a.complete(ctx, []ChatMessage{{Role: "user", Content: fmt.Sprintf(insightPrompt, content, date, mood)}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Classification is the full AI-derived view of one entry.
type Classification struct {
	Title    string   `json:"title"`
	Mood     string   `json:"mood"`
	Tags     []string `json:"tags"`
	Insights string   `json:"insights"`
}

// ProcessEntry runs the full pipeline over the entry content. The title
// call doubles as the availability probe: if it fails the service is
// reported unavailable and the caller stores the entry as written. Later
// per-field failures degrade to defaults instead.
func (a *Assistant) ProcessEntry(ctx context.Context, content string) (*Classification, error) {
	title, err := a.GenerateTitle(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if title == "" {
		title = "Untitled Entry"
	}

	result := &Classification{Title: title, Mood: "neutral"}
	if analysis, err := a.AnalyzeMood(ctx, content); err == nil {
		result.Mood = analysis.Mood
	}
	if tags, err := a.ExtractTags(ctx, content); err == nil {
		result.Tags = tags
	}

	insights, err := a.GenerateInsights(ctx, content, time.Now().Format("2006-01-02"), result.Mood)
	if err != nil {
		insights = "Unable to generate insights at this time."
	}
	result.Insights = insights
	return result, nil
}

// Chat continues a reflective conversation over the journal. The history
// is replayed verbatim ahead of the new input.
func (a *Assistant) Chat(ctx context.Context, history []ChatMessage, input string) (string, error) {
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: input})

	out, err := a.complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(out), nil
}
