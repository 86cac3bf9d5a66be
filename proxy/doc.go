// Package proxy provides routing and response helpers for aws lambda
// functions that act as aws api gateway v2 (http) integrations. Requests
// arrive as events.APIGatewayV2HTTPRequest and leave as
// events.APIGatewayProxyResponse.
//
// The router matches routes by method and path regex in insertion order and
// applies a set of default headers to every response it produces, which is
// how CORS headers get attached uniformly.
package proxy
