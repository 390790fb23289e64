package services

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"resume-analyzer/internal/common"
	"resume-analyzer/internal/models"
)

type GeminiService interface {
	AnalyzeResume(ctx context.Context, resumeText string) (*models.AnalysisResult, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client        *genai.Client
	modelName     string
	embedModel    string
	promptBuilder *PromptBuilder
}

func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:        client,
		modelName:     modelName,
		embedModel:    "text-embedding-004",
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// AnalyzeResume sends the extracted resume text through the fixed analysis
// prompt in JSON mode and decodes the response into the structured contract.
// A single attempt is made; failures surface immediately as AnalysisServiceError.
func (g *geminiService) AnalyzeResume(ctx context.Context, resumeText string) (*models.AnalysisResult, error) {
	prompt := g.promptBuilder.BuildResumeAnalysisPrompt(resumeText)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return nil, &common.AnalysisServiceError{Err: fmt.Errorf("generate content: %w", err)}
	}

	if resp == nil {
		return nil, &common.AnalysisServiceError{Err: fmt.Errorf("no response generated (nil response)")}
	}

	text := resp.Text()
	if text == "" {
		return nil, &common.AnalysisServiceError{Err: fmt.Errorf("no text content in response")}
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &common.AnalysisServiceError{Err: fmt.Errorf("unmarshal analysis response: %w", err)}
	}

	result.Normalize()
	if err := result.Validate(); err != nil {
		return nil, &common.AnalysisServiceError{Err: fmt.Errorf("invalid analysis response: %w", err)}
	}

	return &result, nil
}

// GenerateEmbedding embeds text for the semantic-search index.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
