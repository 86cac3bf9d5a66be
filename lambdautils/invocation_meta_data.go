// Package lambdautils provides small helpers around the aws lambda runtime.
package lambdautils

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// InvocationMetaData identifies the lambda invocation handling the current
// request, for log correlation.
type InvocationMetaData struct {
	FunctionName    string
	FunctionVersion string
	LogStreamName   string
	RequestID       string
}

// GetInvocationMetaData returns metadata extracted from the current lambda
// context. RequestID is empty when ctx doesn't carry a lambda context, which
// is the case in local runs and tests.
func GetInvocationMetaData(ctx context.Context) InvocationMetaData {
	meta := InvocationMetaData{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogStreamName:   lambdacontext.LogStreamName,
	}

	if lctx, ok := lambdacontext.FromContext(ctx); ok {
		meta.RequestID = lctx.AwsRequestID
	}

	return meta
}

// String returns a compact single-line form suitable for log prefixes.
func (meta InvocationMetaData) String() string {
	return fmt.Sprintf("%s@%s req=%s", meta.FunctionName, meta.FunctionVersion, meta.RequestID)
}
