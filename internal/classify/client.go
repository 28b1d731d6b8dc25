package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/genai"
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	azureAPIVersion         = "2024-12-01-preview"

	// The classifier emits a small JSON object; low temperature keeps the
	// function choice stable across retries.
	classifyTemperature = 0.2
	classifyMaxTokens   = 500
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Config selects the LLM provider and credentials for the classifier.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	Endpoint string
}

// ConfigFromViper loads the provider configuration. An empty provider falls
// back to ai.default_provider, then to openai.
func ConfigFromViper(provider string) Config {
	if provider == "" {
		provider = viper.GetString("ai.default_provider")
	}
	if provider == "" {
		provider = "openai"
	}
	prefix := "ai.providers." + provider + "."

	apiKey := strings.TrimSpace(viper.GetString(prefix + "api_key"))
	if apiKey == "" {
		if envName := viper.GetString(prefix + "api_key_env"); envName != "" {
			apiKey = strings.TrimSpace(os.Getenv(envName))
		}
	}

	return Config{
		Provider: provider,
		APIKey:   resolveEnvVarKeyPointer(apiKey),
		Model:    viper.GetString(prefix + "model"),
		Endpoint: viper.GetString(prefix + "endpoint"),
	}
}

func looksLikeEnvVarName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 8 {
		return false
	}
	// Must be all caps/underscores/digits and start with a letter.
	for i, r := range s {
		if i == 0 {
			if r < 'A' || r > 'Z' {
				return false
			}
			continue
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			continue
		}
		return false
	}
	return true
}

// resolveEnvVarKeyPointer lets an api_key value name an environment variable
// instead of carrying the secret itself.
func resolveEnvVarKeyPointer(apiKey string) string {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || !looksLikeEnvVarName(apiKey) {
		return apiKey
	}
	if v := strings.TrimSpace(os.Getenv(apiKey)); v != "" {
		return v
	}
	return apiKey
}

// Client is an LLM-backed Classifier supporting openai, azure, anthropic,
// and gemini-api providers.
type Client struct {
	provider string
	apiKey   string
	model    string
	baseURL  string
	system   string

	httpc  *http.Client
	gemini *genai.Client
}

// NewClient builds a Client from cfg. The system prompt is rendered once from
// the catalog; the capability set is fixed for the process lifetime.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		provider: cfg.Provider,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		baseURL:  strings.TrimRight(cfg.Endpoint, "/"),
		system:   SystemPrompt(),
		httpc:    &http.Client{},
	}

	switch cfg.Provider {
	case "openai":
		if c.baseURL == "" {
			c.baseURL = defaultOpenAIBaseURL
		}
	case "azure":
		if c.baseURL == "" {
			return nil, fmt.Errorf("azure provider requires an endpoint")
		}
	case "anthropic":
		if c.baseURL == "" {
			c.baseURL = defaultAnthropicBaseURL
		}
	case "gemini-api":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini-api provider configured without API key")
		}
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		c.gemini = gc
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}

	return c, nil
}

// Classify asks the provider for an intent. Transport failures surface as
// errors; an unparseable model response degrades to the none intent, matching
// the contract that classification never guesses.
func (c *Client) Classify(ctx context.Context, question string) (Intent, error) {
	raw, err := c.complete(ctx, question)
	if err != nil {
		return Intent{}, err
	}

	cleaned := extractJSON(raw)

	var intent Intent
	if err := json.Unmarshal([]byte(cleaned), &intent); err != nil {
		log.Warn().Err(err).Str("response", truncate(raw, 500)).Msg("unparseable classifier response")
		return Intent{FunctionName: FunctionNone, Arguments: map[string]any{}}, nil
	}
	if intent.FunctionName == "" {
		intent.FunctionName = FunctionNone
	}
	if intent.Arguments == nil {
		intent.Arguments = map[string]any{}
	}
	return intent, nil
}

func (c *Client) complete(ctx context.Context, question string) (string, error) {
	switch c.provider {
	case "openai":
		return c.completeOpenAI(ctx, c.baseURL+"/chat/completions", question)
	case "azure":
		url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			c.baseURL, c.model, azureAPIVersion)
		return c.completeOpenAI(ctx, url, question)
	case "anthropic":
		return c.completeAnthropic(ctx, question)
	case "gemini-api":
		return c.completeGemini(ctx, question)
	}
	return "", fmt.Errorf("unsupported ai provider %q", c.provider)
}

// completeOpenAI covers both OpenAI and Azure deployments; they share the
// chat-completions wire format and differ only in URL and auth header.
func (c *Client) completeOpenAI(ctx context.Context, url, question string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s API key not configured", c.provider)
	}

	request := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: c.system},
			{Role: "user", Content: question},
		},
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	}
	if c.provider == "openai" {
		request.Model = c.model
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.provider == "azure" {
		req.Header.Set("api-key", c.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s request failed with status %d: %s", c.provider, resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices from %s", c.provider)
	}
	return response.Choices[0].Message.Content, nil
}

func (c *Client) completeAnthropic(ctx context.Context, question string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("anthropic API key not configured")
	}

	reqBody := anthropicRequest{
		Model:       c.model,
		MaxTokens:   classifyMaxTokens,
		Temperature: classifyTemperature,
		System:      c.system,
		Messages:    []chatMessage{{Role: "user", Content: question}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	for _, block := range parsed.Content {
		if strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no response content from anthropic")
}

func (c *Client) completeGemini(ctx context.Context, question string) (string, error) {
	if c.gemini == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	content := genai.NewContentFromText(c.system+"\n\nUser: "+question, genai.RoleUser)
	resp, err := c.gemini.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content with gemini: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates from gemini")
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.WriteString(part.Text)
		}
	}
	return result.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
