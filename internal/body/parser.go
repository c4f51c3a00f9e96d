// Package body decodes POST bodies into form trees and materializes uploaded
// files, dispatching on the request content type.
package body

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"lambda-http-bridge/pkg/form"
	"lambda-http-bridge/pkg/httpevent"
)

const urlEncodedType = "application/x-www-form-urlencoded"

// Parser decodes request bodies. The zero value writes uploads to the OS
// temp directory and logs to the standard logger.
type Parser struct {
	tempDir string
	logger  *logrus.Logger
}

// NewParser creates a new Parser. An empty tempDir means the OS temp
// directory.
func NewParser(tempDir string, logger *logrus.Logger) *Parser {
	if logger == nil {
		logger = logrus.New()
	}
	return &Parser{
		tempDir: tempDir,
		logger:  logger,
	}
}

// Parse decodes the event body. Parsing only applies to POST requests
// carrying a content type; for anything else files is empty and fields is
// nil. fields is non-nil exactly when a decodable content type was seen,
// even if the body then yielded nothing. The only error returned is the
// fatal *UploadError; malformed client input degrades to fallback values.
// Materialized temp files belong to the caller's request scope, including
// their cleanup.
func (p *Parser) Parse(ev httpevent.Event) (files, fields *form.Map, err error) {
	files = form.NewMap()

	contentType := ev.ContentType()
	if ev.Method() != http.MethodPost || contentType == "" {
		return files, nil, nil
	}

	if strings.HasPrefix(contentType, urlEncodedType) {
		return files, p.parseURLEncoded(ev.Body()), nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return files, nil, nil
	}
	boundary, ok := params["boundary"]
	if !ok {
		return files, nil, nil
	}

	fields = form.NewMap()
	if err := p.parseMultipart(ev.Body(), boundary, files, fields); err != nil {
		return nil, nil, err
	}
	return files, fields, nil
}

// parseURLEncoded walks the pairs in encounter order so repeated "[]" names
// accumulate the way the client sent them. Decoding matches the standard
// query parser: "+" means space, undecodable or semicolon-separated pairs
// are skipped.
func (p *Parser) parseURLEncoded(body string) *form.Map {
	fields := form.NewMap()
	for body != "" {
		var pair string
		pair, body, _ = strings.Cut(body, "&")
		if pair == "" {
			continue
		}
		if strings.Contains(pair, ";") {
			p.logger.WithField("pair", pair).Debug("Skipping form pair with semicolon separator")
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			p.logger.WithField("pair", pair).Debug("Skipping undecodable form pair")
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			p.logger.WithField("pair", pair).Debug("Skipping undecodable form pair")
			continue
		}
		fields.Assign(decodedName, form.Scalar(decodedValue))
	}
	return fields
}

// parseMultipart scans the MIME parts in order, materializing file parts and
// collecting field parts. A body that stops parsing as multipart keeps
// whatever was decoded before the break.
func (p *Parser) parseMultipart(body, boundary string, files, fields *form.Map) error {
	reader := multipart.NewReader(strings.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			p.logger.WithError(err).Debug("Stopping multipart scan on malformed part")
			return nil
		}

		name := part.FormName()
		if name == "" {
			continue
		}

		data, err := io.ReadAll(part)
		if err != nil {
			p.logger.WithError(err).WithField("field", name).Debug("Stopping multipart scan on unreadable part")
			return nil
		}

		if filename := part.FileName(); filename != "" {
			file, err := p.materialize(name, filename, part.Header.Get("Content-Type"), data)
			if err != nil {
				return err
			}
			files.Assign(name, file)
			continue
		}
		fields.Assign(name, form.Scalar(string(data)))
	}
}

// materialize writes one uploaded part to a freshly created file with a
// unique name, so concurrent invocations sharing the temp directory never
// collide. Disk failure here is the one fatal parse error.
func (p *Parser) materialize(field, filename, contentType string, data []byte) (*form.File, error) {
	tmp, err := os.CreateTemp(p.tempDir, "upload-*")
	if err != nil {
		p.logger.WithError(err).WithField("field", field).Error("Failed to create temporary upload file")
		return nil, NewUploadError(field, filename, fmt.Errorf("%w: %w", ErrTempFileCreate, err))
	}
	defer tmp.Close()

	size, err := tmp.Write(data)
	if err != nil {
		p.logger.WithError(err).WithField("field", field).Error("Failed to write temporary upload file")
		return nil, NewUploadError(field, filename, fmt.Errorf("%w: %w", ErrTempFileWrite, err))
	}

	return &form.File{
		Path:        tmp.Name(),
		Size:        int64(size),
		Err:         form.UploadOK,
		Filename:    filename,
		ContentType: contentType,
	}, nil
}
