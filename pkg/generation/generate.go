// Package generation forwards image generation requests to SDXL and stores
// the resulting image.
package generation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomcpgo/cloud_ai/pkg/client"
	"github.com/gomcpgo/cloud_ai/pkg/storage"
	"github.com/gomcpgo/cloud_ai/pkg/types"
	"go.uber.org/zap"
)

// Generator handles image generation operations
type Generator struct {
	client client.Client
	store  storage.ImageStore
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a new Generator instance
func NewGenerator(c client.Client, store storage.ImageStore, logger *zap.Logger) *Generator {
	return &Generator{
		client: c,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateImage sends body to SDXL unchanged. A failed or filtered generation
// returns a GenerationError and writes nothing; otherwise the first artifact
// is stored exactly once under a fresh key.
func (g *Generator) GenerateImage(ctx context.Context, body []byte) (*types.GeneratedImageResponse, error) {
	if len(body) == 0 {
		return nil, GenerationError{Code: CodeInvalidParameters, Message: "request body is required"}
	}
	if !json.Valid(body) {
		return nil, GenerationError{Code: CodeInvalidParameters, Message: "request body must be JSON"}
	}

	startTime := time.Now()
	raw, err := g.client.InvokeModel(ctx, types.ModelSDXL, body)
	if err != nil {
		return nil, GenerationError{Code: CodeInvocationFailed, Message: "failed to invoke model", Err: err}
	}

	var resp types.SDXLResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, GenerationError{Code: CodeInvalidResponse, Message: "failed to decode model response", Err: err}
	}
	if len(resp.Artifacts) == 0 {
		return nil, GenerationError{Code: CodeNoArtifacts, Message: "model returned no artifacts"}
	}

	artifact := resp.Artifacts[0]
	switch artifact.FinishReason {
	case types.FinishReasonError, types.FinishReasonContentFiltered:
		g.logger.Warn("Image generation rejected", zap.String("finish_reason", artifact.FinishReason))
		return nil, GenerationError{
			Code:         CodeGenerationFailed,
			Message:      fmt.Sprintf("Image generation error. Error code is %s", artifact.FinishReason),
			FinishReason: artifact.FinishReason,
		}
	}

	imageData, err := base64.StdEncoding.DecodeString(artifact.Base64)
	if err != nil {
		return nil, GenerationError{Code: CodeInvalidResponse, Message: "failed to decode image", Err: err}
	}

	key := storage.NewImageKey(g.now())
	if err := g.store.PutImage(ctx, key, imageData); err != nil {
		return nil, GenerationError{Code: CodeStorageFailed, Message: "failed to store image", Err: err}
	}

	g.logger.Info("Image generated",
		zap.String("key", key),
		zap.String("finish_reason", artifact.FinishReason),
		zap.Int64("seed", artifact.Seed),
		zap.Int("size", len(imageData)),
		zap.Duration("elapsed", time.Since(startTime)))

	return &types.GeneratedImageResponse{
		ImageBase64: artifact.Base64,
		S3Key:       key,
	}, nil
}
