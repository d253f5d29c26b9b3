// Package article generates titles and subtitles for article content.
package article

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gomcpgo/cloud_ai/pkg/client"
	"github.com/gomcpgo/cloud_ai/pkg/prompts"
	"github.com/gomcpgo/cloud_ai/pkg/types"
	"go.uber.org/zap"
)

// Generator handles title generation
type Generator struct {
	client  client.Client
	prompts *prompts.Catalog
	logger  *zap.Logger
}

// NewGenerator creates a new Generator instance
func NewGenerator(c client.Client, catalog *prompts.Catalog, logger *zap.Logger) *Generator {
	return &Generator{
		client:  c,
		prompts: catalog,
		logger:  logger,
	}
}

// BuildRequest builds the Claude payload for the article content
func (g *Generator) BuildRequest(content string) types.AnthropicRequest {
	p := topP
	return types.AnthropicRequest{
		AnthropicVersion: types.AnthropicVersion,
		MaxTokens:        maxTokens,
		System:           g.prompts.ArticleSystemPrompt(),
		Messages: []types.AnthropicMessage{
			{
				Role:    "user",
				Content: []types.ContentBlock{types.NewTextBlock(content)},
			},
		},
		Temperature: temperature,
		TopP:        &p,
	}
}

// GenerateTitles returns the model's text for the article: five titles and
// five subtitles per paragraph.
func (g *Generator) GenerateTitles(ctx context.Context, req types.ArticleRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", ArticleError{
			Code:    CodeInvalidParameters,
			Message: "content is required",
		}
	}

	body, err := json.Marshal(g.BuildRequest(req.Content))
	if err != nil {
		return "", ArticleError{Code: CodeInvalidParameters, Message: "failed to encode request", Err: err}
	}

	g.logger.Debug("Generating article titles", zap.Int("content_length", len(req.Content)))

	raw, err := g.client.InvokeModel(ctx, types.ModelClaude3Sonnet, body)
	if err != nil {
		return "", ArticleError{Code: CodeInvocationFailed, Message: "failed to invoke model", Err: err}
	}

	var resp types.AnthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", ArticleError{Code: CodeInvalidResponse, Message: "failed to decode model response", Err: err}
	}
	if len(resp.Content) == 0 {
		return "", ArticleError{Code: CodeEmptyResponse, Message: "model returned no content"}
	}

	g.logger.Debug("Article titles generated",
		zap.String("stop_reason", resp.StopReason),
		zap.Int("output_tokens", resp.Usage.OutputTokens))

	return resp.Content[0].Text, nil
}
