package client

import (
	"context"
)

// Client defines the interface for invoking models on the inference service
type Client interface {
	// InvokeModel sends a provider-shaped JSON body to the model and returns
	// the raw JSON response body
	InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error)
}

// Ensure BedrockClient implements the Client interface
var _ Client = (*BedrockClient)(nil)
