package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nutricare/nutricare-client/internal/common"
	"github.com/nutricare/nutricare-client/internal/logging"
)

const (
	pathUsers = "/users"
	pathLogin = "/users/login"
	pathMe    = "/users/me"
)

// isPublic reports whether a request must go out without a token.
func isPublic(method, path string) bool {
	return method == http.MethodPost && (path == pathUsers || path == pathLogin)
}

// interceptor is the RoundTripper every API request passes through.
// Request side: bearer token, request id, Accept. Response side: 401 and
// 403 hooks.
type interceptor struct {
	next     http.RoundTripper
	basePath string
	tokens   TokenSource
	log      logging.Logger

	mu    sync.RWMutex
	hooks Hooks
}

func newInterceptor(next http.RoundTripper, basePath string, tokens TokenSource, log logging.Logger) *interceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &interceptor{
		next:     next,
		basePath: strings.TrimSuffix(basePath, "/"),
		tokens:   tokens,
		log:      log,
	}
}

func (t *interceptor) setHooks(h Hooks) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = h
}

func (t *interceptor) getHooks() Hooks {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hooks
}

// apiPath strips the base path so "/api/users/me" compares as "/users/me".
func (t *interceptor) apiPath(r *http.Request) string {
	p := strings.TrimPrefix(r.URL.Path, t.basePath)
	if p == "" {
		return "/"
	}
	return p
}

func (t *interceptor) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	path := t.apiPath(r)

	// RoundTrip must not mutate the caller's request.
	req := r.Clone(ctx)

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	if !isPublic(req.Method, path) && t.tokens != nil {
		token, err := t.tokens.AccessToken(ctx)
		if err != nil {
			t.log.Warn(ctx, "failed to read access token", "error", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.log.Debug(ctx, "request failed", "method", req.Method, "path", path, "requestId", reqID, "error", err)
		return nil, err
	}

	t.log.Debug(ctx, "request done",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"requestId", reqID,
		"elapsed", time.Since(start),
	)

	t.onResponse(ctx, resp.StatusCode, path)
	return resp, nil
}

func (t *interceptor) onResponse(ctx context.Context, status int, path string) {
	hooks := t.getHooks()

	switch status {
	case http.StatusUnauthorized:
		if path == pathLogin {
			return
		}
		t.log.Warn(ctx, "session expired, please log in again", "path", path)
		if hooks.OnUnauthorized != nil {
			hooks.OnUnauthorized(ctx)
		}
	case http.StatusForbidden:
		// A 403 on /users/me is a token problem; the session store logs out
		// from FetchMe instead of alerting.
		if path == pathMe {
			return
		}
		if hooks.OnForbidden != nil {
			hooks.OnForbidden(ctx, path)
		}
	}
}
