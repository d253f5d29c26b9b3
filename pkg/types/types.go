package types

import (
	"time"
)

// Model IDs for Bedrock foundation models
const (
	// Text and vision model used by the article and description handlers
	ModelClaude3Sonnet = "anthropic.claude-3-sonnet-20240229-v1:0"

	// Image generation model
	ModelSDXL = "stability.stable-diffusion-xl-v1"
)

// AnthropicVersion is the Messages API version tag Bedrock expects in every Claude payload.
const AnthropicVersion = "bedrock-2023-05-31"

// Finish reasons reported on SDXL artifacts
const (
	FinishReasonSuccess         = "SUCCESS"
	FinishReasonError           = "ERROR"
	FinishReasonContentFiltered = "CONTENT_FILTERED"
)

// Feedback statuses
const (
	FeedbackAccepted = "Accepted"
)

// Prompt types with a fixed template
const (
	PromptTypeStory = "Instagram Story"
	PromptTypePost  = "Instagram Post"
)

// ArticleRequest is the body accepted by the generate-article handler.
type ArticleRequest struct {
	Content string `json:"content"`
}

// DescriptionRequest is the body accepted by the generate-description handler.
type DescriptionRequest struct {
	PromptType      string   `json:"prompt_type" validate:"required"`
	CustomTemplate  string   `json:"custom_template,omitempty"`
	UserDescription string   `json:"user_description,omitempty"`
	UserID          string   `json:"user_id" validate:"required"`
	ImageBytes      string   `json:"image_bytes" validate:"required"`
	MediaType       string   `json:"media_type,omitempty" validate:"omitempty,oneof=image/jpeg image/png image/gif image/webp"`
	Temperature     *float64 `json:"temperature" validate:"required,gte=0,lte=1"`
}

// DescriptionResponse is the body returned by the generate-description handler.
type DescriptionResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GeneratedImageResponse is the body returned by the generate-image handler.
type GeneratedImageResponse struct {
	ImageBase64 string `json:"image_base64"`
	S3Key       string `json:"s3_key"`
}

// ListImagesRequest is the body accepted by the list-images handler.
type ListImagesRequest struct {
	NextToken string `json:"next_token,omitempty"`
}

// ListImagesResponse is the body returned by the list-images handler.
// NextToken is null once the listing is exhausted.
type ListImagesResponse struct {
	Images    []string `json:"images"`
	NextToken *string  `json:"next_token"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FeedbackRecord is the item written once per description request.
type FeedbackRecord struct {
	UserID             string `dynamodbav:"UserID" yaml:"user_id"`
	Timestamp          string `dynamodbav:"Timestamp" yaml:"timestamp"`
	ImageBytes         []byte `dynamodbav:"ImageBytes" yaml:"-"`
	PromptType         string `dynamodbav:"PromptType,omitempty" yaml:"prompt_type,omitempty"`
	Title              string `dynamodbav:"Title,omitempty" yaml:"title,omitempty"`
	InitialDescription string `dynamodbav:"InitialDescription" yaml:"initial_description"`
	UserFeedback       string `dynamodbav:"UserFeedback" yaml:"user_feedback"`
	FinalDescription   string `dynamodbav:"FinalDescription" yaml:"final_description"`
	Status             string `dynamodbav:"Status" yaml:"status"`
}

// FeedbackTimestamp formats a creation time the way FeedbackRecord.Timestamp stores it.
func FeedbackTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ImageMetadata is the sidecar stored next to each image in the local store.
type ImageMetadata struct {
	Version     string    `yaml:"version"`
	Key         string    `yaml:"key"`
	ContentType string    `yaml:"content_type"`
	Size        int       `yaml:"size"`
	Timestamp   time.Time `yaml:"timestamp"`
}
