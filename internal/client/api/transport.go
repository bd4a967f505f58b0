package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/logging"
)

// expirySkew refreshes slightly before the token's exp claim so a request
// does not leave with a token that dies in flight.
const expirySkew = 30 * time.Second

// TokenSource is the persisted-token view the transport works against.
// The session package provides the sqlite-backed implementation.
type TokenSource interface {
	// Tokens returns the currently persisted pair; both fields empty when
	// logged out.
	Tokens(ctx context.Context) (models.TokenPair, error)

	// SetAccess replaces only the stored access token after a refresh.
	SetAccess(ctx context.Context, access string) error

	// Purge removes the whole persisted session group.
	Purge(ctx context.Context) error
}

// authTransport decorates a RoundTripper with bearer injection and the
// refresh-once-replay-once protocol. At most one refresh is spent per
// original request, so a 401 that keeps recurring on the replay cannot loop.
type authTransport struct {
	base       http.RoundTripper
	refreshURL string
	tokens     TokenSource
	logger     logging.Logger

	// mu serializes refresh attempts across concurrent requests.
	mu sync.Mutex

	// onExpired fires after the session has been purged because refresh was
	// impossible. The CLI uses it to drop back to the login prompt.
	onExpired func()

	now func() time.Time
}

func newAuthTransport(base http.RoundTripper, refreshURL string, tokens TokenSource, logger logging.Logger, onExpired func()) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if onExpired == nil {
		onExpired = func() {}
	}
	return &authTransport{
		base:       base,
		refreshURL: refreshURL,
		tokens:     tokens,
		logger:     logger,
		onExpired:  onExpired,
		now:        time.Now,
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	pair, err := t.tokens.Tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading tokens: %w", err)
	}

	req = req.Clone(ctx)
	req.Header.Set("X-Request-ID", uuid.NewString())

	access := pair.Access
	refreshed := false

	// Refresh proactively when the access token is already past its exp
	// claim; the 401 path below stays authoritative either way.
	if access != "" && pair.Refresh != "" && t.expired(access) {
		if fresh, err := t.refresh(ctx, access); err == nil {
			access = fresh
			refreshed = true
		}
	}

	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// One refresh per original request.
	if refreshed {
		return resp, nil
	}

	if pair.Refresh == "" {
		t.expire(ctx)
		return resp, nil
	}

	fresh, rerr := t.refresh(ctx, access)
	if rerr != nil {
		t.expire(ctx)
		return resp, nil
	}

	replay, ok := cloneForReplay(req)
	if !ok {
		return resp, nil
	}

	drain(resp)
	replay.Header.Set("Authorization", "Bearer "+fresh)
	return t.base.RoundTrip(replay)
}

// refresh spends the stored refresh token for a new access token and
// persists it. stale is the access token the caller believes is dead; if a
// concurrent request already refreshed, its result is reused instead of
// spending the refresh token again.
func (t *authTransport) refresh(ctx context.Context, stale string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pair, err := t.tokens.Tokens(ctx)
	if err != nil {
		return "", err
	}
	if pair.Access != "" && pair.Access != stale {
		return pair.Access, nil
	}
	if pair.Refresh == "" {
		return "", ErrUnauthorized
	}

	body, err := json.Marshal(map[string]string{"refresh": pair.Refresh})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", parseError(resp.StatusCode, data)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Access == "" {
		return "", fmt.Errorf("malformed refresh response")
	}

	if err := t.tokens.SetAccess(ctx, out.Access); err != nil {
		return "", err
	}
	t.logger.Info(ctx, "access token refreshed")
	return out.Access, nil
}

// expire purges the persisted session and notifies the app. Used when a 401
// cannot be recovered: no refresh token, or the refresh itself was rejected.
func (t *authTransport) expire(ctx context.Context) {
	if err := t.tokens.Purge(ctx); err != nil {
		t.logger.Error(ctx, "purging session", "error", err)
	}
	t.logger.Warn(ctx, "session expired, forcing logout")
	t.onExpired()
}

// expired reports whether the access token's exp claim is in the past
// (within skew). Unparsable tokens are treated as live; the server decides.
func (t *authTransport) expired(access string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return t.now().Add(expirySkew).After(claims.ExpiresAt.Time)
}

// cloneForReplay rebuilds a request so it can be sent a second time. Requests
// whose body cannot be re-read are not replayable.
func cloneForReplay(req *http.Request) (*http.Request, bool) {
	replay := req.Clone(req.Context())
	if req.Body == nil || req.GetBody == nil {
		return replay, req.Body == nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	replay.Body = body
	return replay, true
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
