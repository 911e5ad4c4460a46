// Package edge implements the invisible authentication interceptor that runs on
// CloudFront viewer events.
//
// On the request phase a page load carrying ?visitor=<linkId> is exchanged for a
// Cognito session and the tokens are attached to the request as transport headers.
// On the response phase those headers become Set-Cookie directives. Every failure
// degrades to passing the original request or response through untouched.
package edge

import "strings"

// CloudFrontEvent is the Lambda@Edge event document.
// aws-lambda-go does not ship these types, so they follow the CloudFront JSON shape.
type CloudFrontEvent struct {
	Records []CloudFrontRecord `json:"Records"`
}

type CloudFrontRecord struct {
	CF CloudFrontPayload `json:"cf"`
}

type CloudFrontPayload struct {
	Config   CloudFrontConfig    `json:"config"`
	Request  *CloudFrontRequest  `json:"request,omitempty"`
	Response *CloudFrontResponse `json:"response,omitempty"`
}

type CloudFrontConfig struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty"`
	EventType              string `json:"eventType"`
	RequestID              string `json:"requestId,omitempty"`
}

type CloudFrontRequest struct {
	ClientIP    string  `json:"clientIp,omitempty"`
	Headers     Headers `json:"headers"`
	Method      string  `json:"method,omitempty"`
	QueryString string  `json:"querystring"`
	URI         string  `json:"uri"`
}

type CloudFrontResponse struct {
	Status            string  `json:"status"`
	StatusDescription string  `json:"statusDescription,omitempty"`
	Headers           Headers `json:"headers"`
}

// Headers maps a lower-cased header name to its values, as CloudFront sends them
type Headers map[string][]Header

type Header struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// Get returns the first value of a header
func (h Headers) Get(name string) (string, bool) {
	values := h[strings.ToLower(name)]
	if len(values) == 0 {
		return "", false
	}
	return values[0].Value, true
}

// Set replaces all values of a header
func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = []Header{{Key: key, Value: value}}
}

// Clone copies the map and every value slice
func (h Headers) Clone() Headers {
	out := make(Headers, len(h)+2)
	for name, values := range h {
		out[name] = append([]Header(nil), values...)
	}
	return out
}

// WithHeaders returns a shallow copy of the request carrying its own header map
func (r *CloudFrontRequest) WithHeaders(headers Headers) *CloudFrontRequest {
	clone := *r
	clone.Headers = headers
	return &clone
}

// WithHeaders returns a shallow copy of the response carrying its own header map
func (r *CloudFrontResponse) WithHeaders(headers Headers) *CloudFrontResponse {
	clone := *r
	clone.Headers = headers
	return &clone
}
