package bridge

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"lambda-http-bridge/pkg/httpevent"
)

// HandlerFunc is application code behind the bridge: one canonical request
// in, one canonical response out.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

const internalErrorBody = `{"error": "Internal server error"}`

func (b *Bridge) serve(ctx context.Context, ev httpevent.Event, fn HandlerFunc) (*Outbound, error) {
	req, err := b.Assemble(ctx, ev)
	if err != nil {
		return nil, err
	}
	resp, err := fn(ctx, req)
	if err != nil {
		return nil, err
	}
	return AdaptResponse(resp)
}

// APIGatewayHandler adapts fn to the REST API proxy integration signature
// expected by lambda.Start. Failures are logged and surface as a plain 500,
// never as an invocation error.
func (b *Bridge) APIGatewayHandler(fn HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		out, err := b.serve(ctx, httpevent.NewAPIGatewayEvent(event), fn)
		if err != nil {
			b.logger.WithError(err).Error("Failed to handle request")
			return events.APIGatewayProxyResponse{
				StatusCode: 500,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       internalErrorBody,
			}, nil
		}
		return out.APIGatewayProxy(), nil
	}
}

// APIGatewayV2Handler adapts fn to the HTTP API integration signature.
func (b *Bridge) APIGatewayV2Handler(fn HandlerFunc) func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		out, err := b.serve(ctx, httpevent.NewAPIGatewayV2Event(event), fn)
		if err != nil {
			b.logger.WithError(err).Error("Failed to handle request")
			return events.APIGatewayV2HTTPResponse{
				StatusCode: 500,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       internalErrorBody,
			}, nil
		}
		return out.APIGatewayV2HTTP(), nil
	}
}

// FunctionURLHandler adapts fn to the Function URL signature.
func (b *Bridge) FunctionURLHandler(fn HandlerFunc) func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		out, err := b.serve(ctx, httpevent.NewFunctionURLEvent(event), fn)
		if err != nil {
			b.logger.WithError(err).Error("Failed to handle request")
			return events.LambdaFunctionURLResponse{
				StatusCode: 500,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       internalErrorBody,
			}, nil
		}
		return out.FunctionURL(), nil
	}
}
