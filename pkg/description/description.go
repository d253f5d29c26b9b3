// Package description produces a title and description for an image and
// records every result as feedback.
package description

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gomcpgo/cloud_ai/pkg/client"
	"github.com/gomcpgo/cloud_ai/pkg/feedback"
	"github.com/gomcpgo/cloud_ai/pkg/prompts"
	"github.com/gomcpgo/cloud_ai/pkg/types"
	"go.uber.org/zap"
)

// Describer handles image description requests
type Describer struct {
	client   client.Client
	recorder feedback.Recorder
	prompts  *prompts.Catalog
	logger   *zap.Logger
	now      func() time.Time
}

// NewDescriber creates a new Describer instance
func NewDescriber(c client.Client, recorder feedback.Recorder, catalog *prompts.Catalog, logger *zap.Logger) *Describer {
	return &Describer{
		client:   c,
		recorder: recorder,
		prompts:  catalog,
		logger:   logger,
		now:      time.Now,
	}
}

// Describe selects a prompt, asks the model about the image, parses the
// answer and writes one feedback record before returning it.
func (d *Describer) Describe(ctx context.Context, req types.DescriptionRequest) (*types.DescriptionResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	sel, err := d.prompts.Select(req.PromptType, req.CustomTemplate, req.UserDescription)
	if err != nil {
		if errors.Is(err, prompts.ErrInvalidPromptType) {
			return nil, DescriptionError{Code: CodeInvalidPromptType, Message: err.Error()}
		}
		return nil, DescriptionError{Code: CodeInvalidRequest, Message: "failed to build prompt", Err: err}
	}

	imageData, err := base64.StdEncoding.DecodeString(req.ImageBytes)
	if err != nil {
		return nil, DescriptionError{Code: CodeInvalidImage, Message: "failed to decode image_bytes", Err: err}
	}

	mediaType := detectMediaType(req.MediaType, imageData)

	d.logger.Debug("Describing image",
		zap.String("prompt_type", req.PromptType),
		zap.String("template_source", string(sel.Source)),
		zap.String("media_type", mediaType),
		zap.Int("image_bytes", len(imageData)))

	payload := types.AnthropicRequest{
		AnthropicVersion: types.AnthropicVersion,
		MaxTokens:        maxTokens,
		Messages: []types.AnthropicMessage{
			{
				Role: "user",
				Content: []types.ContentBlock{
					types.NewImageBlock(mediaType, req.ImageBytes),
					types.NewTextBlock(sel.Prompt),
				},
			},
		},
		Temperature: *req.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, DescriptionError{Code: CodeInvalidRequest, Message: "failed to encode request", Err: err}
	}

	raw, err := d.client.InvokeModel(ctx, types.ModelClaude3Sonnet, body)
	if err != nil {
		return nil, DescriptionError{Code: CodeInvocationFailed, Message: "failed to invoke model", Err: err}
	}

	var resp types.AnthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, DescriptionError{Code: CodeInvalidResponse, Message: "failed to decode model response", Err: err}
	}
	if len(resp.Content) == 0 {
		return nil, DescriptionError{Code: CodeInvalidResponse, Message: "model returned no content"}
	}

	parsed := prompts.ParseDescription(resp.Content[0].Text)

	record := types.FeedbackRecord{
		UserID:             req.UserID,
		Timestamp:          types.FeedbackTimestamp(d.now()),
		ImageBytes:         imageData,
		PromptType:         req.PromptType,
		Title:              parsed.Title,
		InitialDescription: parsed.Description,
		UserFeedback:       req.UserDescription,
		FinalDescription:   parsed.Description,
		Status:             types.FeedbackAccepted,
	}
	if err := d.recorder.PutFeedback(ctx, record); err != nil {
		return nil, DescriptionError{Code: CodeRecordFailed, Message: "failed to record feedback", Err: err}
	}

	d.logger.Info("Image described",
		zap.String("user_id", req.UserID),
		zap.String("timestamp", record.Timestamp),
		zap.String("title", parsed.Title))

	return &types.DescriptionResponse{
		Title:       parsed.Title,
		Description: parsed.Description,
	}, nil
}

// detectMediaType prefers the declared type, then a sniffed type the model accepts
func detectMediaType(declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	sniffed := http.DetectContentType(data)
	switch sniffed {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return sniffed
	}
	return defaultMediaType
}
