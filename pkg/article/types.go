package article

// Inference parameters for title generation
const (
	maxTokens   = 2000
	temperature = 0.7
	topP        = 0.9
)

// Error codes
const (
	CodeInvalidParameters = "invalid_parameters"
	CodeInvocationFailed  = "invocation_failed"
	CodeInvalidResponse   = "invalid_response"
	CodeEmptyResponse     = "empty_response"
)

// ArticleError represents an error during title generation
type ArticleError struct {
	Code    string
	Message string
	Err     error
}

func (e ArticleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e ArticleError) Unwrap() error {
	return e.Err
}
