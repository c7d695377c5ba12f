package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nutricare/nutricare-client/internal/logging"
	"github.com/nutricare/nutricare-client/internal/netx"
)

const maxErrorBody = 4 << 10

// Options configures an HTTPClient.
type Options struct {
	// BaseURL is the API root, e.g. http://127.0.0.1:8080/api.
	BaseURL string

	RequestTimeout    time.Duration
	CreateTimeout     time.Duration
	GenerationTimeout time.Duration

	Tokens TokenSource
	Logger logging.Logger

	// Transport is wrapped by the interceptor. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	plain   *http.Client
	ic      *interceptor
	log     logging.Logger

	requestTimeout    time.Duration
	createTimeout     time.Duration
	generationTimeout time.Duration
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	ic := newInterceptor(opts.Transport, u.Path, opts.Tokens, log)

	c := &HTTPClient{
		baseURL:           u,
		http:              &http.Client{Transport: ic},
		plain:             &http.Client{Transport: opts.Transport},
		ic:                ic,
		log:               log,
		requestTimeout:    orDefault(opts.RequestTimeout, 60*time.Second),
		createTimeout:     orDefault(opts.CreateTimeout, 10*time.Second),
		generationTimeout: orDefault(opts.GenerationTimeout, 180*time.Second),
	}
	return c, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// SetHooks installs the response hooks. It may be called after construction
// so that stores built on top of the client can register themselves.
func (c *HTTPClient) SetHooks(h Hooks) {
	c.ic.setHooks(h)
}

// call describes one API request.
type call struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	timeout     time.Duration
}

func jsonCall(method, path string, v any) (call, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return call{}, fmt.Errorf("encode request: %w", err)
	}
	return call{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json"}, nil
}

func formCall(method, path string, values url.Values) call {
	return call{
		method:      method,
		path:        path,
		body:        strings.NewReader(values.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}
}

func multipartCall(method, path string, fields map[string]string, fileField string, files []FilePart) (call, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return call{}, err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return call{}, err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return call{}, fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return call{}, err
	}

	return call{method: method, path: path, body: &buf, contentType: w.FormDataContentType()}, nil
}

// do executes the call and decodes a JSON response into out when out is not
// nil. It returns the HTTP status. A 204, an empty body or a literal null
// leave out untouched.
func (c *HTTPClient) do(ctx context.Context, cl call, out any) (int, error) {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL.String()+cl.path, cl.body)
	if err != nil {
		return 0, err
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Method:     cl.method,
			Path:       cl.path,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, mapTransportError(err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", cl.method, cl.path, err)
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, call{method: http.MethodGet, path: path}, out)
	return err
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	cl, err := jsonCall(method, path, in)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, cl, out)
	return err
}

func (c *HTTPClient) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: path}, nil)
	return err
}

// nonNil turns a nil slice into an empty one.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (c *HTTPClient) DownloadPhoto(ctx context.Context, photoURL, dir string) (string, error) {
	if photoURL == "" {
		return "", errors.New("photo url is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	return netx.DownloadFile(ctx, c.plain, photoURL, dir)
}
