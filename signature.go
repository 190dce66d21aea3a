package linkshelf

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // fixed by the proxy's secure_link_md5 contract
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultValidity is how long a freshly minted link stays valid.
	DefaultValidity = 24 * time.Hour
	DefaultScheme   = "https"

	// TokenParam and ExpiresParam are the query parameters the proxy reads
	// ($arg_h and $arg_e in nginx).
	TokenParam   = "h"
	ExpiresParam = "e"
)

// SignerConfig configures a LinkSigner.
type SignerConfig struct {
	Secret   string
	Scheme   string
	Validity time.Duration
	// Now is the time source. Defaults to time.Now.
	Now func() time.Time
}

// LinkSigner mints secure download links in the format checked by nginx's
// secure_link module configured with
//
//	secure_link $arg_h,$arg_e;
//	secure_link_md5 "$secure_link_expires$uri <secret>";
type LinkSigner struct {
	secret   string
	scheme   string
	validity time.Duration
	now      func() time.Time
	mapper   *PathMapper
}

// NewLinkSigner creates a LinkSigner. An empty secret is a configuration
// error: links must never be signed without one.
func NewLinkSigner(cfg SignerConfig, mapper *PathMapper) (*LinkSigner, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("new link signer: empty secret: %w", ErrConfiguration)
	}

	if mapper == nil {
		return nil, fmt.Errorf("new link signer: nil path mapper: %w", ErrConfiguration)
	}

	scheme := cfg.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("new link signer: unsupported scheme %q: %w", scheme, ErrConfiguration)
	}

	validity := cfg.Validity
	if validity == 0 {
		validity = DefaultValidity
	}
	if validity < 0 {
		return nil, fmt.Errorf("new link signer: negative validity: %w", ErrConfiguration)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &LinkSigner{
		secret:   cfg.Secret,
		scheme:   scheme,
		validity: validity,
		now:      now,
		mapper:   mapper,
	}, nil
}

// Validity returns the default link lifetime.
func (s *LinkSigner) Validity() time.Duration { return s.validity }

// Sign mints a link for the file at absPath valid for the configured duration.
func (s *LinkSigner) Sign(absPath, hostname string) (SignedLink, error) {
	return s.SignFor(absPath, hostname, s.validity)
}

// SignFor mints a link for the file at absPath valid for the given duration.
func (s *LinkSigner) SignFor(absPath, hostname string, validity time.Duration) (SignedLink, error) {
	if validity <= 0 {
		return SignedLink{}, fmt.Errorf("sign: validity must be positive: %w", ErrInvalidInput)
	}

	if !IsValidHostname(hostname) {
		return SignedLink{}, fmt.Errorf("sign: invalid hostname %q: %w", hostname, ErrInvalidInput)
	}

	now := s.now()
	if now.IsZero() {
		return SignedLink{}, fmt.Errorf("sign: %w", ErrClock)
	}

	uri, err := s.mapper.ToDownloadURI(absPath)
	if err != nil {
		return SignedLink{}, fmt.Errorf("sign: %w", err)
	}

	decoded, err := url.PathUnescape(uri)
	if err != nil {
		return SignedLink{}, fmt.Errorf("sign: decode %q: %w", uri, ErrMalformedPath)
	}

	expiresAt := ExpiresAt(now, validity)
	token := Token(SigningInput(expiresAt, decoded, s.secret))

	return SignedLink{
		URL:       buildLinkURL(s.scheme, hostname, uri, token, expiresAt),
		ExpiresAt: expiresAt,
		Token:     token,
	}, nil
}

// ExpiresAt returns now plus validity as whole Unix seconds. Both terms are
// rounded up so the expiry never lands earlier than requested.
func ExpiresAt(now time.Time, validity time.Duration) int64 {
	secs := now.Unix()
	if now.Nanosecond() > 0 {
		secs++
	}
	return secs + int64((validity+time.Second-1)/time.Second)
}

// SigningInput builds the string hashed by both this signer and the proxy:
// the decimal expiry, the decoded URI, one space, then the secret.
func SigningInput(expiresAt int64, decodedURI, secret string) string {
	var b strings.Builder
	b.Grow(20 + len(decodedURI) + 1 + len(secret))
	b.WriteString(strconv.FormatInt(expiresAt, 10))
	b.WriteString(decodedURI)
	b.WriteByte(' ')
	b.WriteString(secret)
	return b.String()
}

// Token returns the MD5 digest of input as unpadded base64url text.
func Token(input string) string {
	sum := md5.Sum([]byte(input)) //nolint:gosec // see import
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func buildLinkURL(scheme, hostname, uri, token string, expiresAt int64) string {
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(hostname)
	b.WriteString(uri)
	b.WriteString("?" + TokenParam + "=")
	b.WriteString(token)
	b.WriteString("&" + ExpiresParam + "=")
	b.WriteString(strconv.FormatInt(expiresAt, 10))
	return b.String()
}

// LinkVerifier performs the same check as the proxy. The application never
// needs it to serve listings; it backs the verify command and tests.
type LinkVerifier struct {
	secret string
	now    func() time.Time
}

// NewLinkVerifier creates a verifier. now defaults to time.Now.
func NewLinkVerifier(secret string, now func() time.Time) (*LinkVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("new link verifier: empty secret: %w", ErrConfiguration)
	}
	if now == nil {
		now = time.Now
	}
	return &LinkVerifier{secret: secret, now: now}, nil
}

// Verify checks the h and e parameters against the escaped request path.
//
// The link is rejected with ErrUnauthorized when a parameter is missing or
// malformed or the token does not match, and with ErrExpired once the current
// time is past e.
func (v *LinkVerifier) Verify(escapedPath string, query url.Values) error {
	token := query.Get(TokenParam)
	expires := query.Get(ExpiresParam)
	if token == "" || expires == "" {
		return fmt.Errorf("missing %s or %s parameter: %w", TokenParam, ExpiresParam, ErrUnauthorized)
	}

	expiresAt, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s parameter: %w", ExpiresParam, ErrUnauthorized)
	}

	decoded, err := url.PathUnescape(escapedPath)
	if err != nil {
		return fmt.Errorf("decode path: %w", ErrMalformedPath)
	}

	expected := Token(SigningInput(expiresAt, decoded, v.secret))
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return fmt.Errorf("token mismatch: %w", ErrUnauthorized)
	}

	if v.now().Unix() > expiresAt {
		return fmt.Errorf("expired at %d: %w", expiresAt, ErrExpired)
	}

	return nil
}

// VerifyURL parses a full signed URL and verifies it.
func (v *LinkVerifier) VerifyURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", ErrInvalidInput)
	}
	return v.Verify(u.EscapedPath(), u.Query())
}
