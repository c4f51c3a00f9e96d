// Package gateway synthesizes API Gateway proxy events from live HTTP
// requests so the local server and the deployed function exercise the same
// translation path.
package gateway

import (
	"encoding/base64"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

const catchAllResource = "/{proxy+}"

// SynthesizeProxyEvent converts a live HTTP request into the proxy event
// shape API Gateway delivers to Lambda. The body must already be fully read
// so the caller stays in charge of size limits.
func SynthesizeProxyEvent(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	now := time.Now()
	multiHeaders := synthesizeHeaders(r)
	multiQuery := map[string][]string(r.URL.Query())

	encodedBody := string(body)
	isBase64 := false
	if !utf8.Valid(body) {
		encodedBody = base64.StdEncoding.EncodeToString(body)
		isBase64 = true
	}

	return events.APIGatewayProxyRequest{
		Resource:                        catchAllResource,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         lastValues(multiHeaders),
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           lastValues(multiQuery),
		MultiValueQueryStringParameters: multiQuery,
		PathParameters:                  map[string]string{"proxy": strings.TrimPrefix(r.URL.Path, "/")},
		RequestContext:                  synthesizeContext(r, now),
		Body:                            encodedBody,
		IsBase64Encoded:                 isBase64,
	}
}

// synthesizeHeaders rebuilds the header map the way API Gateway presents it:
// the Host header is restored from the request line and the X-Forwarded-*
// headers describe the hop the emulator terminates.
func synthesizeHeaders(r *http.Request) map[string][]string {
	headers := make(map[string][]string, len(r.Header)+3)
	for name, values := range r.Header {
		headers[name] = append([]string(nil), values...)
	}

	headers["Host"] = []string{r.Host}

	proto := "http"
	if r.TLS != nil {
		proto = "https"
	}
	headers["X-Forwarded-Proto"] = []string{proto}

	if _, port, err := net.SplitHostPort(r.Host); err == nil {
		headers["X-Forwarded-Port"] = []string{port}
	}

	return headers
}

// lastValues flattens a multi-value map the way API Gateway does for its
// single-value companions: the last value wins.
func lastValues(multi map[string][]string) map[string]string {
	single := make(map[string]string, len(multi))
	for name, values := range multi {
		if len(values) == 0 {
			continue
		}
		single[name] = values[len(values)-1]
	}
	return single
}

func synthesizeContext(r *http.Request, now time.Time) events.APIGatewayProxyRequestContext {
	sourceIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		sourceIP = host
	}

	return events.APIGatewayProxyRequestContext{
		AccountID:        "000000000000",
		Stage:            "local",
		RequestID:        uuid.New().String(),
		Protocol:         r.Proto,
		HTTPMethod:       r.Method,
		DomainName:       r.Host,
		ResourcePath:     catchAllResource,
		Path:             r.URL.Path,
		RequestTime:      now.Format("02/Jan/2006:15:04:05 -0700"),
		RequestTimeEpoch: now.UnixMilli(),
		Identity: events.APIGatewayRequestIdentity{
			SourceIP:  sourceIP,
			UserAgent: r.UserAgent(),
		},
	}
}
