package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gomcpgo/cloud_ai/pkg/article"
	"github.com/gomcpgo/cloud_ai/pkg/client"
	"github.com/gomcpgo/cloud_ai/pkg/description"
	"github.com/gomcpgo/cloud_ai/pkg/feedback"
	"github.com/gomcpgo/cloud_ai/pkg/gallery"
	"github.com/gomcpgo/cloud_ai/pkg/generation"
	"github.com/gomcpgo/cloud_ai/pkg/prompts"
	"github.com/gomcpgo/cloud_ai/pkg/responses"
	"github.com/gomcpgo/cloud_ai/pkg/storage"
	"go.uber.org/zap"
)

// Handler names, also used as HTTP routes
const (
	GenerateArticle     = "generate-article"
	GenerateDescription = "generate-description"
	GenerateImage       = "generate-image"
	ListImages          = "list-images"
)

// logBodyLimit is the largest request body logged verbatim
const logBodyLimit = 1000

// LambdaFunc is the signature of every API Gateway handler
type LambdaFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Dependencies are the process-wide clients shared by all handlers. Store and
// Recorder may be nil; handlers that need them then report an error.
type Dependencies struct {
	Client     client.Client
	Store      storage.ImageStore
	Recorder   feedback.Recorder
	Prompts    *prompts.Catalog
	PresignTTL time.Duration
	Logger     *zap.Logger
}

// CloudAIHandler serves the four API functions
type CloudAIHandler struct {
	articles  *article.Generator
	describer *description.Describer
	generator *generation.Generator
	gallery   *gallery.Gallery
	logger    *zap.Logger
}

// NewCloudAIHandler creates a new handler instance
func NewCloudAIHandler(deps Dependencies) (*CloudAIHandler, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("inference client is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := deps.Prompts
	if catalog == nil {
		var err error
		if catalog, err = prompts.Default(); err != nil {
			return nil, err
		}
	}

	h := &CloudAIHandler{
		articles: article.NewGenerator(deps.Client, catalog, logger),
		logger:   logger,
	}
	if deps.Recorder != nil {
		h.describer = description.NewDescriber(deps.Client, deps.Recorder, catalog, logger)
	}
	if deps.Store != nil {
		h.generator = generation.NewGenerator(deps.Client, deps.Store, logger)
		h.gallery = gallery.NewGallery(deps.Store, deps.PresignTTL, logger)
	}
	return h, nil
}

// Names lists every handler name
func Names() []string {
	return []string{GenerateArticle, GenerateDescription, GenerateImage, ListImages}
}

// Handle returns the handler function for name
func (h *CloudAIHandler) Handle(name string) (LambdaFunc, error) {
	switch name {
	case GenerateArticle:
		return h.GenerateArticle, nil
	case GenerateDescription:
		return h.GenerateDescription, nil
	case GenerateImage:
		return h.GenerateImage, nil
	case ListImages:
		return h.ListImages, nil
	default:
		return nil, fmt.Errorf("unknown handler: %s", name)
	}
}

// requestBody returns the body, decoding it when API Gateway base64-encoded it
func requestBody(req events.APIGatewayProxyRequest) (string, error) {
	if !req.IsBase64Encoded || req.Body == "" {
		return req.Body, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode request body: %w", err)
	}
	return string(decoded), nil
}

func (h *CloudAIHandler) logRequest(name, body string) {
	field := zap.String("body", body)
	if len(body) > logBodyLimit {
		field = zap.Int("body_bytes", len(body))
	}
	h.logger.Debug("Received request", zap.String("handler", name), field)
}

// errorResponse logs err and converts it to a response
func (h *CloudAIHandler) errorResponse(name string, err error) (events.APIGatewayProxyResponse, error) {
	resp := responses.BuildErrorFromErr(err)
	h.logger.Error("Request failed",
		zap.String("handler", name),
		zap.Int("status", resp.StatusCode),
		zap.Error(err))
	return resp, nil
}

// successResponse encodes v as a 200 response
func (h *CloudAIHandler) successResponse(v interface{}) (events.APIGatewayProxyResponse, error) {
	return responses.BuildJSONResponse(http.StatusOK, v), nil
}

func notConfigured(what string) error {
	return fmt.Errorf("%s is not configured", what)
}
