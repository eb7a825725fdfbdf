package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
)

// Description is the generated copy for an activity that came back from
// the places API without a usable description.
type Description struct {
	Short      string   `json:"short"`
	Long       string   `json:"long"`
	Highlights []string `json:"highlights"`
}

// Describer produces marketing copy for an activity. The sync job treats
// it as a best-effort collaborator.
type Describer interface {
	Describe(ctx context.Context, activity models.Activity, city, country string) (*Description, error)
}

type textGenerator interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GenAIDescriber struct {
	logger   *zap.Logger
	aiClient textGenerator
}

func NewGenAIDescriber(ctx context.Context, apiKey string, logger *zap.Logger) (*GenAIDescriber, error) {
	aiClient, err := generativeAI.NewLLMChatClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return &GenAIDescriber{logger: logger, aiClient: aiClient}, nil
}

func buildDescribePrompt(activity models.Activity, city, country string) string {
	var sb strings.Builder
	sb.WriteString("You write concise travel copy. Describe the attraction below for a trip planning site.\n\n")
	fmt.Fprintf(&sb, "Attraction: %s\n", activity.Name)
	if activity.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", activity.Category)
	}
	fmt.Fprintf(&sb, "Location: %s, %s\n", city, country)
	if activity.Rating > 0 {
		fmt.Fprintf(&sb, "Rating: %.1f (%d reviews)\n", activity.Rating, activity.ReviewCount)
	}
	if activity.PriceLevel != "" {
		fmt.Fprintf(&sb, "Price level: %s\n", activity.PriceLevel)
	}
	sb.WriteString(`
Respond with JSON only, no commentary:
{
  "short": "one sentence, max 120 characters",
  "long": "two to three sentences for a detail page",
  "highlights": ["three", "short", "highlights"]
}`)
	return sb.String()
}

func (d *GenAIDescriber) Describe(ctx context.Context, activity models.Activity, city, country string) (*Description, error) {
	prompt := buildDescribePrompt(activity, city, country)

	response, err := d.aiClient.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.5),
	})
	if err != nil {
		return nil, &common.ExternalAPIError{Service: "genai", Endpoint: "generate", Err: err}
	}
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return nil, &common.ExternalAPIError{Service: "genai", Endpoint: "generate", Err: fmt.Errorf("empty response")}
	}

	var responseText strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			responseText.WriteString(string(part.Text))
		}
	}

	// Clean markdown code blocks if present
	responseStr := strings.TrimSpace(responseText.String())
	if strings.HasPrefix(responseStr, "```json") {
		responseStr = strings.TrimPrefix(responseStr, "```json")
		responseStr = strings.TrimPrefix(responseStr, "```")
		responseStr = strings.TrimSuffix(responseStr, "```")
		responseStr = strings.TrimSpace(responseStr)
	} else if strings.HasPrefix(responseStr, "```") {
		responseStr = strings.TrimPrefix(responseStr, "```")
		responseStr = strings.TrimSuffix(responseStr, "```")
		responseStr = strings.TrimSpace(responseStr)
	}

	var desc Description
	if err := json.Unmarshal([]byte(responseStr), &desc); err != nil {
		d.logger.Error("Failed to parse generated description", zap.Any("error", err), zap.String("response", responseStr))
		return nil, &common.ExternalAPIError{Service: "genai", Endpoint: "generate", Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}
	return &desc, nil
}
