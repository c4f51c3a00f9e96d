package gateway

import (
	"bytes"
	"encoding/base64"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"lambda-http-bridge/pkg/httpevent"
)

func TestSynthesizeProxyEvent(t *testing.T) {
	r := httptest.NewRequest("POST", "http://localhost:8080/orders/42?page=2&tag=a&tag=b", nil)
	r.Header.Set("User-Agent", "curl/8.5.0")
	r.Header.Set("Content-Type", "application/json")
	r.Header.Add("X-Tag", "one")
	r.Header.Add("X-Tag", "two")

	event := SynthesizeProxyEvent(r, []byte(`{"ok":true}`))

	if event.HTTPMethod != "POST" {
		t.Errorf("Expected method POST, got %s", event.HTTPMethod)
	}
	if event.Path != "/orders/42" {
		t.Errorf("Expected path /orders/42, got %s", event.Path)
	}
	if event.Resource != "/{proxy+}" {
		t.Errorf("Expected catch-all resource, got %s", event.Resource)
	}
	if event.PathParameters["proxy"] != "orders/42" {
		t.Errorf("Expected proxy parameter orders/42, got %s", event.PathParameters["proxy"])
	}
	if event.IsBase64Encoded {
		t.Error("Expected text body to stay unencoded")
	}
	if event.Body != `{"ok":true}` {
		t.Errorf("Unexpected body %q", event.Body)
	}

	wantQuery := map[string][]string{"page": {"2"}, "tag": {"a", "b"}}
	if !reflect.DeepEqual(event.MultiValueQueryStringParameters, wantQuery) {
		t.Errorf("Unexpected query parameters %v", event.MultiValueQueryStringParameters)
	}
	if event.QueryStringParameters["tag"] != "b" {
		t.Errorf("Expected last tag value b, got %s", event.QueryStringParameters["tag"])
	}

	headers := event.MultiValueHeaders
	if !reflect.DeepEqual(headers["Host"], []string{"localhost:8080"}) {
		t.Errorf("Unexpected Host header %v", headers["Host"])
	}
	if !reflect.DeepEqual(headers["X-Forwarded-Port"], []string{"8080"}) {
		t.Errorf("Unexpected X-Forwarded-Port header %v", headers["X-Forwarded-Port"])
	}
	if !reflect.DeepEqual(headers["X-Forwarded-Proto"], []string{"http"}) {
		t.Errorf("Unexpected X-Forwarded-Proto header %v", headers["X-Forwarded-Proto"])
	}
	if !reflect.DeepEqual(headers["X-Tag"], []string{"one", "two"}) {
		t.Errorf("Unexpected X-Tag header %v", headers["X-Tag"])
	}
	if event.Headers["X-Tag"] != "two" {
		t.Errorf("Expected last X-Tag value two, got %s", event.Headers["X-Tag"])
	}

	rc := event.RequestContext
	if rc.Stage != "local" {
		t.Errorf("Expected stage local, got %s", rc.Stage)
	}
	if rc.Identity.SourceIP != "192.0.2.1" {
		t.Errorf("Expected source IP 192.0.2.1, got %s", rc.Identity.SourceIP)
	}
	if rc.Identity.UserAgent != "curl/8.5.0" {
		t.Errorf("Expected user agent curl/8.5.0, got %s", rc.Identity.UserAgent)
	}
	if rc.Protocol != "HTTP/1.1" {
		t.Errorf("Expected protocol HTTP/1.1, got %s", rc.Protocol)
	}
	if rc.HTTPMethod != "POST" {
		t.Errorf("Expected context method POST, got %s", rc.HTTPMethod)
	}
	if rc.RequestTimeEpoch == 0 {
		t.Error("Expected request time epoch to be set")
	}
	if _, err := uuid.Parse(rc.RequestID); err != nil {
		t.Errorf("Expected a UUID request ID, got %q: %v", rc.RequestID, err)
	}
}

func TestSynthesizeProxyEventBinaryBody(t *testing.T) {
	r := httptest.NewRequest("POST", "http://localhost:8080/upload", nil)
	body := []byte{0xff, 0xfe, 0x00, 0x89}

	event := SynthesizeProxyEvent(r, body)

	if !event.IsBase64Encoded {
		t.Fatal("Expected binary body to be base64 encoded")
	}
	decoded, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if !bytes.Equal(decoded, body) {
		t.Errorf("Body did not survive encoding: %v", decoded)
	}
}

func TestSynthesizeProxyEventRootPath(t *testing.T) {
	r := httptest.NewRequest("GET", "http://localhost:8080/", nil)

	event := SynthesizeProxyEvent(r, nil)

	if event.Path != "/" {
		t.Errorf("Expected path /, got %s", event.Path)
	}
	if event.PathParameters["proxy"] != "" {
		t.Errorf("Expected empty proxy parameter, got %s", event.PathParameters["proxy"])
	}
	if event.Body != "" {
		t.Errorf("Expected empty body, got %q", event.Body)
	}
}

func TestSynthesizedEventTranslates(t *testing.T) {
	r := httptest.NewRequest("GET", "http://localhost:8080/ping?b=2&a=1", nil)

	ev := httpevent.NewAPIGatewayEvent(SynthesizeProxyEvent(r, nil))

	if ev.ServerName() != "localhost:8080" {
		t.Errorf("Expected server name localhost:8080, got %s", ev.ServerName())
	}
	if ev.ServerPort() != "8080" {
		t.Errorf("Expected server port 8080, got %s", ev.ServerPort())
	}
	if ev.QueryString() != "a=1&b=2" {
		t.Errorf("Expected normalized query string, got %s", ev.QueryString())
	}
	if ev.URI() != "/ping?a=1&b=2" {
		t.Errorf("Unexpected URI %s", ev.URI())
	}
	if ev.Path() != "/ping" {
		t.Errorf("Unexpected path %s", ev.Path())
	}
}
