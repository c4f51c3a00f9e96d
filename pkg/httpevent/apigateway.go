package httpevent

import (
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// APIGatewayEvent adapts the REST API proxy integration payload (v1).
type APIGatewayEvent struct {
	event  events.APIGatewayProxyRequest
	header http.Header
	body   string
}

// NewAPIGatewayEvent wraps a v1 proxy event. The body is base64-decoded up
// front when the event flags it.
func NewAPIGatewayEvent(event events.APIGatewayProxyRequest) *APIGatewayEvent {
	return &APIGatewayEvent{
		event:  event,
		header: headerFromMaps(event.MultiValueHeaders, event.Headers),
		body:   decodeBody(event.Body, event.IsBase64Encoded),
	}
}

func (e *APIGatewayEvent) Method() string { return e.event.HTTPMethod }

func (e *APIGatewayEvent) Path() string { return e.event.Path }

// QueryString re-encodes the parameter maps the platform already split; v1
// events do not carry the raw query string. Encoding sorts keys, so the
// result is stable across calls.
func (e *APIGatewayEvent) QueryString() string {
	return e.QueryParameters().Encode()
}

func (e *APIGatewayEvent) URI() string {
	return joinURI(e.event.Path, e.QueryString())
}

func (e *APIGatewayEvent) Protocol() string {
	if protocol := e.event.RequestContext.Protocol; protocol != "" {
		return protocol
	}
	return "HTTP/1.1"
}

func (e *APIGatewayEvent) ProtocolVersion() string {
	return protocolVersion(e.Protocol())
}

func (e *APIGatewayEvent) ServerName() string {
	return serverName(e.header, e.event.RequestContext.DomainName)
}

func (e *APIGatewayEvent) ServerPort() string { return serverPort(e.header) }

// RemotePort is always absent: the platform does not convey the client port.
func (e *APIGatewayEvent) RemotePort() string { return "" }

func (e *APIGatewayEvent) Headers() http.Header { return e.header }

func (e *APIGatewayEvent) Body() string { return e.body }

func (e *APIGatewayEvent) ContentType() string { return e.header.Get("Content-Type") }

func (e *APIGatewayEvent) PathParameters() map[string]string { return e.event.PathParameters }

func (e *APIGatewayEvent) QueryParameters() url.Values {
	values := make(url.Values)
	if len(e.event.MultiValueQueryStringParameters) > 0 {
		for name, list := range e.event.MultiValueQueryStringParameters {
			values[name] = append([]string(nil), list...)
		}
		return values
	}
	for name, value := range e.event.QueryStringParameters {
		values.Set(name, value)
	}
	return values
}

func (e *APIGatewayEvent) Cookies() map[string]string { return cookiesFromHeader(e.header) }

func (e *APIGatewayEvent) Raw() interface{} { return e.event }
