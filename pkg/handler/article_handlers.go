package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gomcpgo/cloud_ai/pkg/types"
)

// GenerateArticle handles the generate-article function. Every failure is a 500.
func (h *CloudAIHandler) GenerateArticle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return h.errorResponse(GenerateArticle, err)
	}
	h.logRequest(GenerateArticle, body)

	var in types.ArticleRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return h.errorResponse(GenerateArticle, fmt.Errorf("invalid request body: %w", err))
	}

	text, err := h.articles.GenerateTitles(ctx, in)
	if err != nil {
		return h.errorResponse(GenerateArticle, err)
	}

	return h.successResponse(text)
}
