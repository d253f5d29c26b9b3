package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// GenerateImage handles the generate-image function. The body is passed to the
// model as is.
func (h *CloudAIHandler) GenerateImage(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return h.errorResponse(GenerateImage, err)
	}
	h.logRequest(GenerateImage, body)

	if h.generator == nil {
		return h.errorResponse(GenerateImage, notConfigured("image store"))
	}

	resp, err := h.generator.GenerateImage(ctx, []byte(body))
	if err != nil {
		return h.errorResponse(GenerateImage, err)
	}

	return h.successResponse(resp)
}
