package types

// Content block types for the Anthropic Messages API
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// AnthropicRequest is the InvokeModel body for Claude models on Bedrock.
type AnthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []AnthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature"`
	TopP             *float64           `json:"top_p,omitempty"`
}

// AnthropicMessage is a single conversation turn.
type AnthropicMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is either a text block or a base64 image block.
type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

// ImageSource carries inline image data for an image block.
type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// AnthropicResponse is the InvokeModel response body for Claude models.
type AnthropicResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model,omitempty"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// SDXLResponse is the InvokeModel response body for Stability SDXL.
type SDXLResponse struct {
	Result    string         `json:"result"`
	Artifacts []SDXLArtifact `json:"artifacts"`
}

// SDXLArtifact is one generated image.
type SDXLArtifact struct {
	Seed         int64  `json:"seed"`
	Base64       string `json:"base64"`
	FinishReason string `json:"finishReason"`
}

// NewTextBlock builds a text content block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// NewImageBlock builds a base64 image content block.
func NewImageBlock(mediaType, data string) ContentBlock {
	return ContentBlock{
		Type: ContentTypeImage,
		Source: &ImageSource{
			Type:      "base64",
			MediaType: mediaType,
			Data:      data,
		},
	}
}
