package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gomcpgo/cloud_ai/pkg/description"
)

// GenerateDescription handles the generate-description function. Request
// problems are reported as 400, everything downstream as 500.
func (h *CloudAIHandler) GenerateDescription(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return h.errorResponse(GenerateDescription, err)
	}
	h.logRequest(GenerateDescription, body)

	in, err := description.DecodeRequest(body)
	if err != nil {
		return h.errorResponse(GenerateDescription, err)
	}

	if h.describer == nil {
		return h.errorResponse(GenerateDescription, notConfigured("feedback store"))
	}

	resp, err := h.describer.Describe(ctx, in)
	if err != nil {
		return h.errorResponse(GenerateDescription, err)
	}

	return h.successResponse(resp)
}
