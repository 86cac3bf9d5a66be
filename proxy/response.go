package proxy

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSONResponse returns a response with the given status and v marshaled as
// the JSON body.
func JSONResponse(status int, v interface{}) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrapf(err, "failed marshaling response body %+v", v)
	}

	response := events.APIGatewayProxyResponse{
		StatusCode:      status,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            string(body),
		IsBase64Encoded: false,
	}

	return response, nil
}

// ErrorResponse returns a response with the given status and the uniform
// {"success":false,"error":...} JSON body.
func ErrorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(errorBody{Success: false, Error: message})
	if err != nil {
		body = []byte(`{"success":false,"error":"internal error"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode:      status,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            string(body),
		IsBase64Encoded: false,
	}
}
