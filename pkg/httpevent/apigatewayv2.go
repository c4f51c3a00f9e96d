package httpevent

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// APIGatewayV2Event adapts the HTTP API integration payload (v2).
type APIGatewayV2Event struct {
	event  events.APIGatewayV2HTTPRequest
	header http.Header
	body   string
}

// NewAPIGatewayV2Event wraps a v2 event. v2 strips the Cookie header into a
// separate list; the adapter folds it back so header consumers see the
// request the client actually sent.
func NewAPIGatewayV2Event(event events.APIGatewayV2HTTPRequest) *APIGatewayV2Event {
	header := headerFromMaps(nil, event.Headers)
	if len(event.Cookies) > 0 {
		header.Set("Cookie", strings.Join(event.Cookies, "; "))
	}
	return &APIGatewayV2Event{
		event:  event,
		header: header,
		body:   decodeBody(event.Body, event.IsBase64Encoded),
	}
}

func (e *APIGatewayV2Event) Method() string { return e.event.RequestContext.HTTP.Method }

func (e *APIGatewayV2Event) Path() string {
	if e.event.RawPath != "" {
		return e.event.RawPath
	}
	return e.event.RequestContext.HTTP.Path
}

func (e *APIGatewayV2Event) QueryString() string { return e.event.RawQueryString }

func (e *APIGatewayV2Event) URI() string {
	return joinURI(e.Path(), e.event.RawQueryString)
}

func (e *APIGatewayV2Event) Protocol() string {
	if protocol := e.event.RequestContext.HTTP.Protocol; protocol != "" {
		return protocol
	}
	return "HTTP/1.1"
}

func (e *APIGatewayV2Event) ProtocolVersion() string {
	return protocolVersion(e.Protocol())
}

func (e *APIGatewayV2Event) ServerName() string {
	return serverName(e.header, e.event.RequestContext.DomainName)
}

func (e *APIGatewayV2Event) ServerPort() string { return serverPort(e.header) }

func (e *APIGatewayV2Event) RemotePort() string { return "" }

func (e *APIGatewayV2Event) Headers() http.Header { return e.header }

func (e *APIGatewayV2Event) Body() string { return e.body }

func (e *APIGatewayV2Event) ContentType() string { return e.header.Get("Content-Type") }

func (e *APIGatewayV2Event) PathParameters() map[string]string { return e.event.PathParameters }

func (e *APIGatewayV2Event) QueryParameters() url.Values {
	// ParseQuery keeps every pair it could decode, which is all we want
	// from client-controlled input.
	values, _ := url.ParseQuery(e.event.RawQueryString)
	return values
}

func (e *APIGatewayV2Event) Cookies() map[string]string {
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

func (e *APIGatewayV2Event) Raw() interface{} { return e.event }
