package knowledge

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"schemapath/internal/pathgraph"
)

// GeminiSummarizer implements Summarizer using Gemini text generation.
type GeminiSummarizer struct {
	client        *genai.Client
	model         string
	promptBuilder *PromptBuilder
}

func NewGeminiSummarizer(ctx context.Context, apiKey string, modelName string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiSummarizer{
		client:        client,
		model:         modelName,
		promptBuilder: &PromptBuilder{},
	}, nil
}

func (s *GeminiSummarizer) ExplainRoutes(ctx context.Context, graph *pathgraph.Graph) (string, error) {
	if graph.IsEmpty() {
		return "No routes exist between the two tables.", nil
	}
	prompt := s.promptBuilder.BuildExplainRoutesPrompt(graph)
	return s.generate(ctx, prompt)
}

func (s *GeminiSummarizer) ExplainImpact(ctx context.Context, table string, ancestors, descendants []string) (string, error) {
	prompt := s.promptBuilder.BuildExplainImpactPrompt(table, ancestors, descendants)
	return s.generate(ctx, prompt)
}

func (s *GeminiSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	contents := genai.Text(prompt)
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "No analysis available.", nil
	}
	return cleanMarkdownOutput(text), nil
}

func cleanMarkdownOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```markdown") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
