package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

const defaultUserAgent = "tabtidy/1.0"

// Prober checks whether a single URL is reachable. A lightweight HEAD
// request is tried first; servers that reject HEAD get one GET instead.
type Prober struct {
	Client    *http.Client
	HeadFirst bool
	UserAgent string
}

func New(timeout time.Duration, headFirst bool, userAgent string) *Prober {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Prober{
		Client: &http.Client{
			Timeout: timeout,
		},
		HeadFirst: headFirst,
		UserAgent: userAgent,
	}
}

// Probe runs one reachability check bounded by req.Timeout. It never returns
// an error: malformed URLs, timeouts, DNS/TLS failures and non-success
// statuses all become unreachable outcomes with a diagnostic reason.
func (p *Prober) Probe(ctx context.Context, req domain.CheckRequest) domain.Outcome {
	target, err := normalizeURL(req.URL)
	if err != nil {
		return domain.Outcome{
			ID:     req.ID,
			URL:    req.URL,
			Reason: "invalid URL",
		}
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	res := p.check(ctx, target)
	res.ID = req.ID
	res.URL = req.URL
	return res
}

func (p *Prober) check(ctx context.Context, target string) domain.Outcome {
	if p.HeadFirst {
		res, err := p.do(ctx, http.MethodHead, target)
		// Some servers reject HEAD; fall back to GET once.
		if err == nil && (res.StatusCode == http.StatusMethodNotAllowed || res.StatusCode == http.StatusBadRequest) {
			res, _ = p.do(ctx, http.MethodGet, target)
			return res
		}
		var pe *http.ProtocolError
		if errors.As(err, &pe) {
			res, _ = p.do(ctx, http.MethodGet, target)
		}
		return res
	}
	res, _ := p.do(ctx, http.MethodGet, target)
	return res
}

func (p *Prober) do(ctx context.Context, method, target string) (domain.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return domain.Outcome{Reason: "invalid URL"}, err
	}
	req.Header.Set("User-Agent", p.UserAgent)

	start := time.Now()
	resp, err := p.Client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		return domain.Outcome{
			Reason:  fmt.Sprintf("%s request: %v", method, err),
			Elapsed: elapsed,
		}, err
	}
	defer resp.Body.Close()

	out := domain.Outcome{StatusCode: resp.StatusCode, Elapsed: elapsed}
	if resp.StatusCode >= 400 {
		out.Reason = fmt.Sprintf("status %d", resp.StatusCode)
		return out, nil
	}
	out.Reachable = true
	return out, nil
}

// normalizeURL prefixes scheme-less input with https:// and rejects anything
// that still does not parse into an absolute http(s) URL.
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty url")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("missing scheme or host")
	}
	return u.String(), nil
}
