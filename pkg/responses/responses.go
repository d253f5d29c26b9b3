// Package responses turns handler results into API Gateway proxy responses.
// It is the only place HTTP status codes are chosen.
package responses

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gomcpgo/cloud_ai/pkg/description"
	"github.com/gomcpgo/cloud_ai/pkg/types"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// BuildJSONResponse creates a response with v encoded as the JSON body
func BuildJSONResponse(status int, v interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return BuildErrorResponse(http.StatusInternalServerError, "failed to encode response: "+err.Error())
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    copyHeaders(),
		Body:       string(body),
	}
}

// BuildErrorResponse creates a {"error": message} response
func BuildErrorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(types.ErrorResponse{Error: message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    copyHeaders(),
		Body:       string(body),
	}
}

// BuildErrorFromErr creates the error response for err with the status StatusFor picks
func BuildErrorFromErr(err error) events.APIGatewayProxyResponse {
	return BuildErrorResponse(StatusFor(err), err.Error())
}

// StatusFor maps an error to its HTTP status: 400 for errors caused by the
// caller's request, 500 for everything else.
func StatusFor(err error) int {
	var descErr description.DescriptionError
	if errors.As(err, &descErr) && descErr.IsClientError() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func copyHeaders() map[string]string {
	h := make(map[string]string, len(jsonHeaders))
	for k, v := range jsonHeaders {
		h[k] = v
	}
	return h
}
