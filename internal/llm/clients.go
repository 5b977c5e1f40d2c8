package llm

import (
	"context"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"google.golang.org/genai"
)

// ChatClient abstracts the LLM completion capability needed by the planner
// service. Keeping it an interface lets tests substitute a fake generator
// without real network access.
type ChatClient interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Model() string
}

// GeminiChatClient adapts the generativeAI LLM client to the ChatClient interface.
type GeminiChatClient struct {
	client *generativeAI.LLMChatClient
}

// NewGeminiChatClient creates a ChatClient backed by Gemini.
func NewGeminiChatClient(ctx context.Context, apiKey string) (ChatClient, error) {
	client, err := generativeAI.NewLLMChatClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return &GeminiChatClient{client: client}, nil
}

func (g *GeminiChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.GenerateResponse(ctx, prompt, config)
}

func (g *GeminiChatClient) Model() string {
	if g.client == nil {
		return ""
	}
	return g.client.ModelName
}

// ResponseText extracts the first candidate text from a completion response.
// The model returns free text; an empty string means the response carried no
// usable content.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			return candidate.Content.Parts[0].Text
		}
	}
	return ""
}
