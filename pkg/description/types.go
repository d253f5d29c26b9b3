package description

// Inference parameters for image description
const (
	maxTokens        = 600
	defaultMediaType = "image/jpeg"
)

// Error codes. The first three are caused by the caller's request.
const (
	CodeMissingBody       = "missing_body"
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidPromptType = "invalid_prompt_type"
	CodeInvalidImage      = "invalid_image"
	CodeInvocationFailed  = "invocation_failed"
	CodeInvalidResponse   = "invalid_response"
	CodeRecordFailed      = "record_failed"
)

// DescriptionError represents an error while describing an image
type DescriptionError struct {
	Code    string
	Message string
	Err     error
}

func (e DescriptionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e DescriptionError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the error was caused by the request itself
func (e DescriptionError) IsClientError() bool {
	switch e.Code {
	case CodeMissingBody, CodeInvalidRequest, CodeInvalidPromptType:
		return true
	}
	return false
}
