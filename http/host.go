package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sagarc03/linkshelf"
)

// HostResolver picks the hostname placed in signed links.
//
// A static PublicHost always wins. Otherwise X-Forwarded-Host is used only
// when TrustProxy is set, because anyone reaching the server directly can
// forge it. The request Host is the fallback.
type HostResolver struct {
	PublicHost string
	TrustProxy bool
}

// Resolve returns the hostname for r or an error wrapping
// linkshelf.ErrInvalidInput.
func (h HostResolver) Resolve(r *http.Request) (string, error) {
	host := h.PublicHost

	if host == "" && h.TrustProxy {
		if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
			// first hop is the one the client talked to
			host, _, _ = strings.Cut(fwd, ",")
			host = strings.TrimSpace(host)
		}
	}

	if host == "" {
		host = r.Host
	}

	if !linkshelf.IsValidHostname(host) {
		return "", fmt.Errorf("resolve host %q: %w", host, linkshelf.ErrInvalidInput)
	}

	return host, nil
}
