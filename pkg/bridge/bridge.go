// Package bridge assembles canonical HTTP requests out of serverless
// invocation events and adapts canonical responses back into the platform's
// output shapes.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"lambda-http-bridge/internal/body"
	"lambda-http-bridge/internal/cgi"
	"lambda-http-bridge/pkg/httpevent"
)

// Bridge translates between platform events and canonical requests. One
// Bridge serves the whole process; each Assemble call is independent.
type Bridge struct {
	parser *body.Parser
	logger *logrus.Logger
}

// NewBridge creates a new Bridge. uploadDir is where file parts are
// materialized, "" meaning the OS temp directory.
func NewBridge(uploadDir string, logger *logrus.Logger) *Bridge {
	if logger == nil {
		logger = logrus.New()
	}
	return &Bridge{
		parser: body.NewParser(uploadDir, logger),
		logger: logger,
	}
}

// Assemble builds the canonical request for one invocation event: server
// variables, decoded body trees, materialized uploads, path-parameter
// attributes and the event/context passthroughs. The body reader is fresh
// and positioned at the start. The only failure is upload materialization;
// malformed client input never aborts assembly.
func (b *Bridge) Assemble(ctx context.Context, ev httpevent.Event) (*Request, error) {
	files, fields, err := b.parser.Parse(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request body: %w", err)
	}

	pathParams := ev.PathParameters()
	attrs := make(map[string]interface{}, len(pathParams)+2)
	for name, value := range pathParams {
		attrs[name] = value
	}
	attrs[AttrEvent] = ev
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		attrs[AttrContext] = lc
	}

	return &Request{
		Method:          ev.Method(),
		URI:             ev.URI(),
		ProtocolVersion: ev.ProtocolVersion(),
		Headers:         ev.Headers(),
		Body:            strings.NewReader(ev.Body()),
		ServerVars:      cgi.BuildVariables(ev),
		Attributes:      attrs,
		Cookies:         ev.Cookies(),
		Query:           ev.QueryParameters(),
		Form:            fields,
		Files:           files,
	}, nil
}
