package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gomcpgo/cloud_ai/pkg/types"
)

// ListImages handles the list-images function. An empty body asks for the first page.
func (h *CloudAIHandler) ListImages(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return h.errorResponse(ListImages, err)
	}
	h.logRequest(ListImages, body)

	var in types.ListImagesRequest
	if strings.TrimSpace(body) != "" {
		if err := json.Unmarshal([]byte(body), &in); err != nil {
			return h.errorResponse(ListImages, fmt.Errorf("invalid request body: %w", err))
		}
	}

	if h.gallery == nil {
		return h.errorResponse(ListImages, notConfigured("image store"))
	}

	resp, err := h.gallery.List(ctx, in)
	if err != nil {
		return h.errorResponse(ListImages, err)
	}

	return h.successResponse(resp)
}
