package httpaction

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/goccy/go-json"
)

const (
	// DefaultMaxMemory is the memory limit for parsing multipart forms (10MB).
	DefaultMaxMemory = 10 << 20

	// DefaultMaxJSONSize is the maximum size of JSON request bodies (1MB).
	DefaultMaxJSONSize = 1 << 20
)

// Input reads the action input from r. See the package documentation for the
// mapping from content types to values. Only WithMaxMemory and WithMaxJSONSize
// affect it.
func Input(r *http.Request, opts ...Option) (any, error) {
	return readInput(r, newConfig(opts))
}

func readInput(r *http.Request, cfg *config) (any, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		if r.ContentLength > 0 {
			return nil, fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
		}
		if q := r.URL.Query(); len(q) > 0 {
			return q, nil
		}
		return nil, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/json":
		return decodeJSON(r.Body, cfg.maxJSONSize)

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return r.PostForm, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return r.MultipartForm, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// decodeJSON treats an empty body as a nil input. Bodies over limit bytes are
// rejected without being read in full.
func decodeJSON(body io.Reader, limit int64) (any, error) {
	if body == nil {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %w (max %d bytes)", ErrInvalidJSON, ErrBodyTooLarge, limit)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return v, nil
}
