package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"devevent/internal/adapters/auth"
	"devevent/internal/domain"
)

const (
	// DefaultTimeout bounds a single revalidation request.
	DefaultTimeout = 5 * time.Second
	tokenTTL       = time.Minute
)

type httpInvalidator struct {
	client  *http.Client
	logger  *slog.Logger
	url     string
	issuer  domain.TokenIssuer
	timeout time.Duration
	// done, when set, is called after each attempt finishes.
	done func(err error)
}

// NewHTTPInvalidator returns a CacheInvalidator that POSTs {"path": ...} to url.
// A non-nil issuer adds a short-lived bearer token to each request.
func NewHTTPInvalidator(client *http.Client, logger *slog.Logger, url string, issuer domain.TokenIssuer, timeout time.Duration) domain.CacheInvalidator {
	return newHTTPInvalidator(client, logger, url, issuer, timeout)
}

func newHTTPInvalidator(client *http.Client, logger *slog.Logger, url string, issuer domain.TokenIssuer, timeout time.Duration) *httpInvalidator {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &httpInvalidator{client: client, logger: logger, url: url, issuer: issuer, timeout: timeout}
}

// Invalidate runs the request in a detached goroutine; the caller never waits.
func (i *httpInvalidator) Invalidate(path string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
		defer cancel()
		err := i.send(ctx, path)
		if err != nil {
			i.logger.Warn("revalidation failed, listing refreshes on cache expiry", "path", path, "err", err)
		}
		if i.done != nil {
			i.done(err)
		}
	}()
}

func (i *httpInvalidator) send(ctx context.Context, path string) error {
	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if i.issuer != nil {
		token, err := i.issuer.Issue(auth.RevalidateSubject, tokenTTL)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call revalidate endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("revalidate endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
