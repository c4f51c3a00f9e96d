package bridge

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// Response is the canonical response produced by handler code, before
// translation back into a platform shape.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       io.ReadSeeker
}

// NewResponse builds a Response over a string body. A nil header map is
// replaced with an empty one.
func NewResponse(statusCode int, headers http.Header, body string) *Response {
	if headers == nil {
		headers = make(http.Header)
	}
	return &Response{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       strings.NewReader(body),
	}
}

// Outbound is the platform-facing response: the fully read body, the header
// multimap and the status code, exactly as the handler set them.
type Outbound struct {
	Body       string
	Headers    http.Header
	StatusCode int
}

// AdaptResponse rewinds the response body, reads it fully and carries
// headers and status over unchanged.
func AdaptResponse(resp *Response) (*Outbound, error) {
	var bodyStr string
	if resp.Body != nil {
		if _, err := resp.Body.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind response body: %w", err)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		bodyStr = string(data)
	}
	return &Outbound{
		Body:       bodyStr,
		Headers:    resp.Headers,
		StatusCode: resp.StatusCode,
	}, nil
}

// APIGatewayProxy serializes for the REST API proxy integration, which
// accepts the header multimap as is.
func (o *Outbound) APIGatewayProxy() events.APIGatewayProxyResponse {
	bodyStr, isBase64 := encodeBody(o.Body)
	return events.APIGatewayProxyResponse{
		StatusCode:        o.StatusCode,
		MultiValueHeaders: map[string][]string(o.Headers),
		Body:              bodyStr,
		IsBase64Encoded:   isBase64,
	}
}

// APIGatewayV2HTTP serializes for the HTTP API integration: single-valued
// headers, cookies in their own list.
func (o *Outbound) APIGatewayV2HTTP() events.APIGatewayV2HTTPResponse {
	bodyStr, isBase64 := encodeBody(o.Body)
	headers, cookies := flattenHeaders(o.Headers)
	return events.APIGatewayV2HTTPResponse{
		StatusCode:      o.StatusCode,
		Headers:         headers,
		Cookies:         cookies,
		Body:            bodyStr,
		IsBase64Encoded: isBase64,
	}
}

// FunctionURL serializes for Lambda Function URLs, which share the v2 shape.
func (o *Outbound) FunctionURL() events.LambdaFunctionURLResponse {
	bodyStr, isBase64 := encodeBody(o.Body)
	headers, cookies := flattenHeaders(o.Headers)
	return events.LambdaFunctionURLResponse{
		StatusCode:      o.StatusCode,
		Headers:         headers,
		Cookies:         cookies,
		Body:            bodyStr,
		IsBase64Encoded: isBase64,
	}
}

// encodeBody base64-wraps bodies that are not valid UTF-8; the platform
// needs the flag to deliver binary payloads intact.
func encodeBody(bodyStr string) (string, bool) {
	if utf8.ValidString(bodyStr) {
		return bodyStr, false
	}
	return base64.StdEncoding.EncodeToString([]byte(bodyStr)), true
}

// flattenHeaders joins repeated values with commas for the platforms that
// take single-valued header maps. Set-Cookie values cannot be comma-joined,
// so they are returned separately for the cookies list.
func flattenHeaders(headers http.Header) (map[string]string, []string) {
	flat := make(map[string]string, len(headers))
	var cookies []string
	for name, values := range headers {
		if http.CanonicalHeaderKey(name) == "Set-Cookie" {
			cookies = append(cookies, values...)
			continue
		}
		flat[name] = strings.Join(values, ", ")
	}
	return flat, cookies
}
