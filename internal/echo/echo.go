// Package echo implements the diagnostic handler the bridge ships with. It
// renders every facet of the assembled request back as JSON, which makes it
// a direct probe of the translation work.
package echo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"lambda-http-bridge/pkg/bridge"
	"lambda-http-bridge/pkg/form"
)

// payload is the JSON document Handler responds with.
type payload struct {
	Method          string            `json:"method"`
	URI             string            `json:"uri"`
	ProtocolVersion string            `json:"protocol_version"`
	ServerVars      map[string]string `json:"server_vars"`
	Headers         http.Header       `json:"headers"`
	Query           url.Values        `json:"query"`
	Cookies         map[string]string `json:"cookies"`
	PathParams      map[string]string `json:"path_params,omitempty"`
	Form            *form.Map         `json:"form,omitempty"`
	Files           *form.Map         `json:"files,omitempty"`
	BodySize        int               `json:"body_size"`
	EventRequestID  string            `json:"event_request_id,omitempty"`
	InvocationID    string            `json:"invocation_id,omitempty"`
	AuthUser        string            `json:"auth_user,omitempty"`
}

// Handler echoes the assembled request back to the caller.
func Handler(ctx context.Context, req *bridge.Request) (*bridge.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}

	doc := payload{
		Method:          req.Method,
		URI:             req.URI,
		ProtocolVersion: req.ProtocolVersion,
		ServerVars:      req.ServerVars,
		Headers:         req.Headers,
		Query:           req.Query,
		Cookies:         req.Cookies,
		PathParams:      req.Event().PathParameters(),
		Form:            req.Form,
		Files:           req.Files,
		BodySize:        len(body),
		EventRequestID:  eventRequestID(req.Event().Raw()),
	}

	if lc := req.LambdaContext(); lc != nil {
		doc.InvocationID = lc.AwsRequestID
	}
	if user, _, ok := req.BasicAuth(); ok {
		doc.AuthUser = user
	}

	// Form values and headers are echoed back verbatim; HTML escaping
	// would turn "&" into a unicode escape in the diagnostic output.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	headers := http.Header{"Content-Type": []string{"application/json"}}
	return bridge.NewResponse(http.StatusOK, headers, strings.TrimRight(buf.String(), "\n")), nil
}

// eventRequestID digs the platform's own request ID out of the raw payload.
func eventRequestID(raw interface{}) string {
	switch event := raw.(type) {
	case events.APIGatewayProxyRequest:
		return event.RequestContext.RequestID
	case events.APIGatewayV2HTTPRequest:
		return event.RequestContext.RequestID
	case events.LambdaFunctionURLRequest:
		return event.RequestContext.RequestID
	default:
		return ""
	}
}
