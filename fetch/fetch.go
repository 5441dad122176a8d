/*
Package fetch provides the collaborator used to resolve remote header
extensions (`jku` and `x5u`) referenced by a JOSE header, without coupling
the `jwk`/`jws` packages to a concrete HTTP stack.
*/
package fetch

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	bhttp "go.bryk.io/jose/net/http"
)

// Flags control how a RemoteFetcher implementation is allowed to behave
// when resolving a `jku`/`x5u` reference.
type Flags uint8

const (
	// None applies no restriction.
	None Flags = 0
	// IgnoreRemote disables remote resolution entirely; any `jku`/`x5u`
	// present in a header is left unresolved.
	IgnoreRemote Flags = 1 << iota
	// IgnoreServerCertificate skips TLS certificate validation. Only ever
	// useful against trusted test fixtures; never enable in production.
	IgnoreServerCertificate
)

// Has reports whether the flag set includes `f`.
func (flags Flags) Has(f Flags) bool {
	return flags&f != 0
}

// RemoteFetcher resolves the content located at a `jku`/`x5u` URL. It is
// the seam `jwk`/`jws` use to keep header-extension resolution free of any
// concrete HTTP client dependency.
type RemoteFetcher interface {
	// Fetch retrieves the raw content at `url`, honoring `flags`.
	Fetch(ctx context.Context, url string, flags Flags) ([]byte, error)
}

// HTTPFetcher is the production RemoteFetcher, built on the project's
// standard HTTP client wrapper.
type HTTPFetcher struct {
	timeout time.Duration
}

// NewHTTPFetcher returns a RemoteFetcher backed by net/http, bounding every
// request to `timeout` (zero disables the bound).
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{timeout: timeout}
}

// Fetch implements RemoteFetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, flags Flags) ([]byte, error) {
	if flags.Has(IgnoreRemote) {
		return nil, ErrRemoteDisabled
	}
	opts := []bhttp.ClientOption{}
	if f.timeout > 0 {
		opts = append(opts, bhttp.WithTimeout(f.timeout))
	}
	if flags.Has(IgnoreServerCertificate) {
		tr := http.DefaultTransport.(*http.Transport).Clone()      // nolint: forcetypeassert
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // nolint: gosec
		opts = append(opts, bhttp.WithRoundTripper(tr))
	}
	client, err := bhttp.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode}
	}
	return io.ReadAll(res.Body)
}

// ErrRemoteDisabled is returned by HTTPFetcher.Fetch when IgnoreRemote is set.
var ErrRemoteDisabled = &StatusError{URL: "", StatusCode: 0, msg: "remote resolution is disabled"}

// StatusError reports a non-200 response, or a disabled-fetch condition,
// while resolving a remote reference.
type StatusError struct {
	URL        string
	StatusCode int
	msg        string
}

func (e *StatusError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return "unexpected status " + http.StatusText(e.StatusCode) + " fetching " + e.URL
}
