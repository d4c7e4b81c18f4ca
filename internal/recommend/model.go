package recommend

import (
	"fmt"

	"github.com/smartkitchen/inventory-api/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel builds the shared LLM client from configuration. Both plain
// OpenAI-compatible endpoints and Azure deployments are supported; the same
// client backs product recommendations and meal plan generation.
func NewModel(cfg config.AIConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is not set")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.AzureDeploy {
		opts = append(opts,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithAPIVersion(cfg.APIVersion),
		)
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
