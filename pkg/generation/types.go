package generation

// Error codes
const (
	CodeInvalidParameters = "invalid_parameters"
	CodeInvocationFailed  = "invocation_failed"
	CodeInvalidResponse   = "invalid_response"
	CodeNoArtifacts       = "no_artifacts"
	CodeGenerationFailed  = "generation_failed"
	CodeStorageFailed     = "storage_failed"
)

// GenerationError represents an error during generation
type GenerationError struct {
	Code    string
	Message string
	// FinishReason is set when the model rejected or failed the generation
	FinishReason string
	Err          error
}

func (e GenerationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e GenerationError) Unwrap() error {
	return e.Err
}
