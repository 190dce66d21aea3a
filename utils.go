package linkshelf

import (
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// hostTag matches a bare host without brackets or port.
const hostTag = "hostname_rfc1123|ipv4"

// IsSafeSegment reports whether a decoded path segment can be joined under
// the base directory without changing directory level. It rejects:
//   - ".." (parent directory)
//   - "/" and, where it is the separator, "\" smuggled in through
//     percent-encoding
//   - NUL bytes
//
// Empty segments and "." are accepted; callers treat them as no-ops.
func IsSafeSegment(seg string) bool {
	if seg == ".." {
		return false
	}

	if strings.ContainsAny(seg, "/\x00") {
		return false
	}

	return filepath.Separator != '\\' || !strings.ContainsRune(seg, '\\')
}

// IsValidHostname reports whether h is usable as the authority of a signed
// URL: a DNS name or IPv4 address, or a bracketed IPv6 address, each with an
// optional port.
func IsValidHostname(h string) bool {
	if h == "" {
		return false
	}

	host, port, err := net.SplitHostPort(h)
	if err != nil {
		host, port = h, ""
	} else if !isValidPort(port) {
		return false
	}

	if inner, ok := strings.CutPrefix(host, "["); ok {
		inner, ok = strings.CutSuffix(inner, "]")
		return ok && port == "" && validate.Var(inner, "ipv6") == nil
	}

	if strings.HasPrefix(h, "[") {
		return validate.Var(host, "ipv6") == nil
	}

	return validate.Var(host, hostTag) == nil
}

func isValidPort(port string) bool {
	n, err := strconv.ParseUint(port, 10, 16)
	return err == nil && n > 0
}

// IsValidBasePath reports whether p can be used verbatim as a public URL
// prefix: it starts with "/" and every segment is a plain name that needs no
// percent-encoding.
func IsValidBasePath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}

	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return true
	}

	for seg := range strings.SplitSeq(trimmed, "/") {
		if seg == "" || seg == "." || seg == ".." || url.PathEscape(seg) != seg {
			return false
		}
	}

	return true
}
