// Package httpevent normalizes the HTTP invocation payloads AWS delivers to
// Lambda functions (API Gateway REST APIs, HTTP APIs and Function URLs) into
// a single accessor surface the rest of the bridge consumes.
package httpevent

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
)

// Event is one inbound HTTP invocation, read-only. String accessors return
// "" when the platform did not convey the value.
type Event interface {
	Method() string
	URI() string
	Path() string
	QueryString() string
	Protocol() string
	ProtocolVersion() string
	ServerName() string
	ServerPort() string
	RemotePort() string
	Headers() http.Header
	Body() string
	ContentType() string
	PathParameters() map[string]string
	QueryParameters() url.Values
	Cookies() map[string]string

	// Raw returns the unmodified platform payload the adapter was built
	// from, for downstream introspection.
	Raw() interface{}
}

// decodeBody reverses the platform's base64 wrapping of binary bodies. A
// payload flagged base64 that does not decode is passed through untouched.
func decodeBody(body string, isBase64 bool) string {
	if !isBase64 {
		return body
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return body
	}
	return string(decoded)
}

// headerFromMaps builds a canonical multi-value header set, preferring the
// multi-value map when the payload carries one.
func headerFromMaps(multi map[string][]string, single map[string]string) http.Header {
	header := make(http.Header)
	if len(multi) > 0 {
		for name, values := range multi {
			for _, value := range values {
				header.Add(name, value)
			}
		}
		return header
	}
	for name, value := range single {
		header.Add(name, value)
	}
	return header
}

func protocolVersion(protocol string) string {
	return strings.TrimPrefix(protocol, "HTTP/")
}

func serverName(header http.Header, domain string) string {
	if host := header.Get("Host"); host != "" {
		return host
	}
	if domain != "" {
		return domain
	}
	return "localhost"
}

// serverPort reads the port API Gateway reports in X-Forwarded-Port.
func serverPort(header http.Header) string {
	if port := header.Get("X-Forwarded-Port"); port != "" {
		return port
	}
	return "80"
}

// cookiesFromHeader parses the Cookie header with net/http semantics.
// Repeated names collapse to the last value.
func cookiesFromHeader(header http.Header) map[string]string {
	request := http.Request{Header: header}
	parsed := request.Cookies()
	cookies := make(map[string]string, len(parsed))
	for _, cookie := range parsed {
		cookies[cookie.Name] = cookie.Value
	}
	return cookies
}

func joinURI(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
