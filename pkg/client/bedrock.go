package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

const contentTypeJSON = "application/json"

// logBodyLimit caps how much of a payload is written to debug logs; image
// payloads are megabytes of base64.
const logBodyLimit = 1000

// InvokeModelAPI is the subset of the Bedrock runtime client used here
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient handles communication with the Bedrock runtime API
type BedrockClient struct {
	api    InvokeModelAPI
	logger *zap.Logger
}

// NewBedrockClient creates a new Bedrock runtime client from an AWS config
func NewBedrockClient(cfg aws.Config, logger *zap.Logger) *BedrockClient {
	return NewBedrockClientWithAPI(bedrockruntime.NewFromConfig(cfg), logger)
}

// NewBedrockClientWithAPI wraps an existing runtime API implementation
func NewBedrockClientWithAPI(api InvokeModelAPI, logger *zap.Logger) *BedrockClient {
	return &BedrockClient{api: api, logger: logger}
}

// InvokeModel invokes a model with a JSON body and returns the JSON response body
func (c *BedrockClient) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	c.logger.Debug("invoking model", zap.String("model_id", modelID), loggableBody("request_body", body))

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model %s: %w", modelID, err)
	}

	c.logger.Debug("model response", zap.String("model_id", modelID), loggableBody("response_body", out.Body))
	return out.Body, nil
}

// loggableBody logs small bodies verbatim and large ones by size only
func loggableBody(key string, body []byte) zap.Field {
	if len(body) > logBodyLimit {
		return zap.Int(key+"_bytes", len(body))
	}
	return zap.ByteString(key, body)
}
