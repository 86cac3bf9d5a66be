package relay

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/clearlane/formrelay/airtable"
	"github.com/clearlane/formrelay/lambdautils"
	"github.com/clearlane/formrelay/proxy"
)

// CORSHeaders returns the permissive headers attached to every response so
// browsers can call the relay cross-origin.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, PATCH, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
}

// Router returns the configured proxy router for the relay.
//
// The relay is a single endpoint: POST creates, PATCH updates, OPTIONS is
// CORS preflight. Any path is accepted on those methods since the gateway
// pins the path. Every other method falls through to a 405 and every
// pipeline error is converted to a 500 with the uniform error body.
func (h *Handler) Router() (*proxy.Router, error) {
	router := proxy.NewRouter(CORSHeaders())

	router.OPTIONS(".*", h.preflightRoute)
	router.POST(".*", h.submitRoute)
	router.PATCH(".*", h.submitRoute)

	router.AddCatchAllHandler(h.methodNotAllowed)
	router.AddErrorHandler(h.routeError)

	if !router.Valid() {
		return nil, router.BuildErrors()
	}

	return router, nil
}

// preflightRoute answers CORS preflight with an empty success response.
func (h *Handler) preflightRoute(rctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// submitRoute parses the submission body and runs the pipeline. Errors
// propagate to routeError.
func (h *Handler) submitRoute(rctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
	sub := new(Submission)
	if err := rctx.UnmarshalBody(sub); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	result, err := h.Submit(rctx.Context, sub)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return proxy.JSONResponse(http.StatusOK, result)
}

// methodNotAllowed handles any request outside the allowed method set.
func (h *Handler) methodNotAllowed(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	return proxy.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed"), nil
}

// routeError is the single top-level error boundary: it logs the failure
// with the invocation metadata and converts it to a 500 response.
func (h *Handler) routeError(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
	meta := lambdautils.GetInvocationMetaData(ctx)
	h.Logger.Printf("request failed (%s): %v", meta, err)

	return proxy.ErrorResponse(http.StatusInternalServerError, errorMessage(err)), nil
}

// errorMessage picks the message surfaced in the 500 body. Upstream Airtable
// failures report the upstream message only, everything else reports the
// error chain.
func errorMessage(err error) string {
	if apiErr, ok := errors.Cause(err).(*airtable.APIError); ok {
		return apiErr.Message
	}

	return err.Error()
}
