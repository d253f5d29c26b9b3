package description

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gomcpgo/cloud_ai/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeRequest parses and validates a request body
func DecodeRequest(body string) (types.DescriptionRequest, error) {
	var req types.DescriptionRequest
	if body == "" {
		return req, DescriptionError{Code: CodeMissingBody, Message: "Missing body in event"}
	}

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return req, DescriptionError{Code: CodeInvalidRequest, Message: "Invalid JSON body", Err: err}
	}

	if err := ValidateRequest(req); err != nil {
		return req, err
	}
	return req, nil
}

// ValidateRequest checks required fields and ranges
func ValidateRequest(req types.DescriptionRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return DescriptionError{Code: CodeInvalidRequest, Message: "Invalid request", Err: err}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return DescriptionError{
		Code:    CodeInvalidRequest,
		Message: "Invalid request: " + strings.Join(msgs, "; "),
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
