package responses

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gomcpgo/cloud_ai/pkg/description"
	"github.com/gomcpgo/cloud_ai/pkg/generation"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing body", description.DescriptionError{Code: description.CodeMissingBody}, http.StatusBadRequest},
		{"invalid request", description.DescriptionError{Code: description.CodeInvalidRequest}, http.StatusBadRequest},
		{"invalid prompt type", description.DescriptionError{Code: description.CodeInvalidPromptType}, http.StatusBadRequest},
		{"wrapped client error", fmt.Errorf("ctx: %w", description.DescriptionError{Code: description.CodeInvalidPromptType}), http.StatusBadRequest},
		{"description upstream", description.DescriptionError{Code: description.CodeInvocationFailed}, http.StatusInternalServerError},
		{"generation", generation.GenerationError{Code: generation.CodeGenerationFailed}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestBuildJSONResponse(t *testing.T) {
	resp := BuildJSONResponse(http.StatusOK, map[string]string{"title": "x"})
	if resp.StatusCode != 200 || resp.Body != `{"title":"x"}` {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("unexpected headers %v", resp.Headers)
	}

	str := BuildJSONResponse(http.StatusOK, "line1\nline2")
	if str.Body != `"line1\nline2"` {
		t.Errorf("string bodies should be JSON-encoded, got %s", str.Body)
	}

	bad := BuildJSONResponse(http.StatusOK, make(chan int))
	if bad.StatusCode != http.StatusInternalServerError {
		t.Errorf("unencodable value should yield 500, got %d", bad.StatusCode)
	}
}

func TestBuildErrorFromErr(t *testing.T) {
	resp := BuildErrorFromErr(description.DescriptionError{Code: description.CodeMissingBody, Message: "Missing body in event"})
	if resp.StatusCode != 400 || resp.Body != `{"error":"Missing body in event"}` {
		t.Errorf("unexpected response %+v", resp)
	}

	resp = BuildErrorFromErr(generation.GenerationError{Message: "Image generation error. Error code is ERROR"})
	if resp.StatusCode != 500 || resp.Body != `{"error":"Image generation error. Error code is ERROR"}` {
		t.Errorf("unexpected response %+v", resp)
	}
}
