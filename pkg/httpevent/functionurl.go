package httpevent

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// FunctionURLEvent adapts the Lambda Function URL payload, which mirrors the
// v2 HTTP API shape but has no path parameters.
type FunctionURLEvent struct {
	event  events.LambdaFunctionURLRequest
	header http.Header
	body   string
}

// NewFunctionURLEvent wraps a Function URL event.
func NewFunctionURLEvent(event events.LambdaFunctionURLRequest) *FunctionURLEvent {
	header := headerFromMaps(nil, event.Headers)
	if len(event.Cookies) > 0 {
		header.Set("Cookie", strings.Join(event.Cookies, "; "))
	}
	return &FunctionURLEvent{
		event:  event,
		header: header,
		body:   decodeBody(event.Body, event.IsBase64Encoded),
	}
}

func (e *FunctionURLEvent) Method() string { return e.event.RequestContext.HTTP.Method }

func (e *FunctionURLEvent) Path() string {
	if e.event.RawPath != "" {
		return e.event.RawPath
	}
	return e.event.RequestContext.HTTP.Path
}

func (e *FunctionURLEvent) QueryString() string { return e.event.RawQueryString }

func (e *FunctionURLEvent) URI() string {
	return joinURI(e.Path(), e.event.RawQueryString)
}

func (e *FunctionURLEvent) Protocol() string {
	if protocol := e.event.RequestContext.HTTP.Protocol; protocol != "" {
		return protocol
	}
	return "HTTP/1.1"
}

func (e *FunctionURLEvent) ProtocolVersion() string {
	return protocolVersion(e.Protocol())
}

func (e *FunctionURLEvent) ServerName() string {
	return serverName(e.header, e.event.RequestContext.DomainName)
}

func (e *FunctionURLEvent) ServerPort() string { return serverPort(e.header) }

func (e *FunctionURLEvent) RemotePort() string { return "" }

func (e *FunctionURLEvent) Headers() http.Header { return e.header }

func (e *FunctionURLEvent) Body() string { return e.body }

func (e *FunctionURLEvent) ContentType() string { return e.header.Get("Content-Type") }

// PathParameters is always empty: Function URLs route a single function.
func (e *FunctionURLEvent) PathParameters() map[string]string { return nil }

func (e *FunctionURLEvent) QueryParameters() url.Values {
	values, _ := url.ParseQuery(e.event.RawQueryString)
	return values
}

func (e *FunctionURLEvent) Cookies() map[string]string {
	cookies := make(map[string]string, len(e.event.Cookies))
	for _, entry := range e.event.Cookies {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		cookies[name] = value
	}
	return cookies
}

func (e *FunctionURLEvent) Raw() interface{} { return e.event }
