// Package httpauth extracts HTTP Basic credentials from request headers.
package httpauth

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const basicPrefix = "Basic "

// BasicCredentials reads the first Authorization header value and returns the
// Basic credentials it carries. Any other scheme, a missing header, invalid
// base64 or a payload without a colon yields ok=false; malformed credentials
// are client input, never an error. The password is everything after the
// first colon.
func BasicCredentials(header http.Header) (user, pass string, ok bool) {
	auth := strings.TrimSpace(header.Get("Authorization"))
	if !strings.HasPrefix(auth, basicPrefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(auth[len(basicPrefix):])
	if err != nil {
		return "", "", false
	}
	user, pass, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return user, pass, true
}
