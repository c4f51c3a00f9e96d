package bridge

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"lambda-http-bridge/internal/httpauth"
	"lambda-http-bridge/pkg/form"
	"lambda-http-bridge/pkg/httpevent"
)

// Attribute names reserved for the invocation passthroughs. Every other
// attribute is a path parameter keyed by its own name.
const (
	AttrEvent   = "lambda-event"
	AttrContext = "lambda-context"
)

// Request is the canonical, fully-formed representation of one HTTP
// invocation, assembled once per event.
type Request struct {
	Method          string
	URI             string
	ProtocolVersion string
	Headers         http.Header
	Body            *strings.Reader
	ServerVars      map[string]string
	Attributes      map[string]interface{}
	Cookies         map[string]string
	Query           url.Values

	// Form is the decoded body tree, nil when body parsing did not apply
	// to the request. Files holds the materialized uploads and is always
	// present.
	Form  *form.Map
	Files *form.Map
}

// Attribute returns a named request attribute: a path parameter, or one of
// the Attr* passthroughs.
func (r *Request) Attribute(name string) interface{} {
	return r.Attributes[name]
}

// Event returns the normalized invocation event the request was assembled
// from.
func (r *Request) Event() httpevent.Event {
	ev, _ := r.Attributes[AttrEvent].(httpevent.Event)
	return ev
}

// LambdaContext returns the invocation context, nil when the request was not
// assembled inside a Lambda invocation.
func (r *Request) LambdaContext() *lambdacontext.LambdaContext {
	lc, _ := r.Attributes[AttrContext].(*lambdacontext.LambdaContext)
	return lc
}

// BasicAuth extracts the HTTP Basic credentials from the request headers.
func (r *Request) BasicAuth() (user, pass string, ok bool) {
	return httpauth.BasicCredentials(r.Headers)
}
