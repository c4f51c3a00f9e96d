// Package cgi derives the flat CGI-style server variable map handler code
// expects from a normalized invocation event.
package cgi

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lambda-http-bridge/internal/httpauth"
	"lambda-http-bridge/pkg/httpevent"
)

// timeNow is swapped out in tests to pin the request timestamps.
var timeNow = time.Now

// BuildVariables produces one entry per server variable whose source value
// the event actually carries; absent sources are omitted rather than written
// empty. After the explicit keys, every event header contributes an
// HTTP_<NAME> entry from its first value, upper-snake-cased. Header-derived
// entries are written last and may overwrite, which only matters for
// HTTP_HOST where both spellings carry the same value.
func BuildVariables(ev httpevent.Event) map[string]string {
	now := timeNow()
	header := ev.Headers()

	vars := make(map[string]string, len(header)+16)

	if length := header.Get("Content-Length"); length != "" {
		vars["CONTENT_LENGTH"] = length
	}
	if contentType := ev.ContentType(); contentType != "" {
		vars["CONTENT_TYPE"] = contentType
	}
	if wd, err := os.Getwd(); err == nil {
		vars["DOCUMENT_ROOT"] = wd
	}
	vars["QUERY_STRING"] = ev.QueryString()
	vars["REQUEST_METHOD"] = ev.Method()
	if name := ev.ServerName(); name != "" {
		vars["SERVER_NAME"] = name
	}
	if port := ev.ServerPort(); port != "" {
		vars["SERVER_PORT"] = port
	}
	if protocol := ev.Protocol(); protocol != "" {
		vars["SERVER_PROTOCOL"] = protocol
	}
	vars["PATH_INFO"] = ev.Path()
	if host := header.Get("Host"); host != "" {
		vars["HTTP_HOST"] = host
	}
	if port := ev.RemotePort(); port != "" {
		vars["REMOTE_PORT"] = port
	}
	vars["REQUEST_TIME"] = strconv.FormatInt(now.Unix(), 10)
	vars["REQUEST_TIME_FLOAT"] = fmt.Sprintf("%d.%06d", now.Unix(), now.Nanosecond()/1000)
	vars["REQUEST_URI"] = ev.URI()
	if user, pass, ok := httpauth.BasicCredentials(header); ok {
		vars["PHP_AUTH_USER"] = user
		vars["PHP_AUTH_PW"] = pass
	}

	for name, values := range header {
		if len(values) == 0 {
			continue
		}
		vars["HTTP_"+strings.ToUpper(strings.ReplaceAll(name, "-", "_"))] = values[0]
	}

	return vars
}
