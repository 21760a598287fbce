package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/logging"
	"fintrack/internal/sourceerror"

	"golang.org/x/net/context/ctxhttp"
)

// maxBodyBytes caps a single collection response.
const maxBodyBytes = 32 << 20

// HTTPSource reads collections from the REST backend: GET {base}/{collection}
// returns a JSON array.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewHTTPSource returns a source for the backend at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Name identifies the source in logs and errors.
func (s *HTTPSource) Name() string { return "http" }

// Close releases the source.
func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// URL returns the endpoint of a collection.
func (s *HTTPSource) URL(c Collection) string {
	return s.baseURL + "/" + string(c)
}

// Fetch returns the undecoded records of collection c.
func (s *HTTPSource) Fetch(ctx context.Context, c Collection) ([]Raw, error) {
	url := s.URL(c)
	s.logger.Debug("Fetching collection", logging.F(logging.FieldURL, url))

	resp, err := ctxhttp.Get(ctx, s.client, url)
	if err != nil {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Warn("Backend returned an error status",
			logging.F(logging.FieldURL, url),
			logging.F(logging.FieldStatus, resp.StatusCode),
			logging.F("body", strings.TrimSpace(string(body))))
		return nil, &sourceerror.FetchError{
			Source:     s.Name(),
			Collection: string(c),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &sourceerror.FetchError{Source: s.Name(), Collection: string(c), Err: err}
	}
	raws, err := decodeJSON(body)
	if err != nil {
		return nil, &sourceerror.DecodeError{Source: s.Name(), Collection: string(c), Err: err}
	}
	return raws, nil
}

// decodeJSON reads a JSON array of objects. Numbers are kept as json.Number
// so amounts never pass through float64. A null or empty body is an empty
// collection.
func decodeJSON(body []byte) ([]Raw, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []Raw{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raws []Raw
	if err := dec.Decode(&raws); err != nil {
		return nil, err
	}
	if raws == nil {
		raws = []Raw{}
	}
	return raws, nil
}
