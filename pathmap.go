package linkshelf

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// PathMapper translates between public URL paths and filesystem paths under a
// fixed base directory.
type PathMapper struct {
	baseDir      string
	listingBase  string
	downloadBase string
}

// NewPathMapper creates a PathMapper.
//
// baseDir must be absolute. listingBase and downloadBase are the public URL
// prefixes of the listing and download routes (e.g. "/downloads" and
// "/download"). They must start with "/" and contain no characters that
// need percent-encoding, so they appear in URLs exactly as configured.
func NewPathMapper(baseDir, listingBase, downloadBase string) (*PathMapper, error) {
	if !filepath.IsAbs(baseDir) {
		return nil, fmt.Errorf("new path mapper: base directory %q is not absolute: %w", baseDir, ErrConfiguration)
	}

	lb, err := normalizeBasePath(listingBase)
	if err != nil {
		return nil, fmt.Errorf("new path mapper: listing base: %w", err)
	}

	db, err := normalizeBasePath(downloadBase)
	if err != nil {
		return nil, fmt.Errorf("new path mapper: download base: %w", err)
	}

	return &PathMapper{
		baseDir:      filepath.Clean(baseDir),
		listingBase:  lb,
		downloadBase: db,
	}, nil
}

func normalizeBasePath(p string) (string, error) {
	if !IsValidBasePath(p) {
		return "", fmt.Errorf("%q must start with / and hold only plain URL path segments: %w", p, ErrConfiguration)
	}
	return strings.TrimRight(p, "/"), nil
}

// BaseDir returns the absolute base directory.
func (m *PathMapper) BaseDir() string { return m.baseDir }

// ListingBase returns the public listing prefix without a trailing slash.
func (m *PathMapper) ListingBase() string { return m.listingBase }

// DownloadBase returns the public download prefix without a trailing slash.
func (m *PathMapper) DownloadBase() string { return m.downloadBase }

// SplitRequestPath splits a still percent-encoded path into raw segments.
// Nothing is decoded here so that "%2F" stays inside its segment.
func SplitRequestPath(escapedPath string) []string {
	escapedPath = strings.Trim(escapedPath, "/")
	if escapedPath == "" {
		return nil
	}
	return strings.Split(escapedPath, "/")
}

// ToFilesystemPath decodes each segment on its own and joins the results
// under the base directory. Empty and "." segments are skipped. A segment
// that decodes to ".." or contains a separator fails with ErrPathTraversal;
// an invalid percent escape fails with ErrMalformedPath.
func (m *PathMapper) ToFilesystemPath(segments []string) (string, error) {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, m.baseDir)

	for _, seg := range segments {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return "", fmt.Errorf("decode segment %q: %w", seg, ErrMalformedPath)
		}

		if !IsSafeSegment(decoded) {
			return "", fmt.Errorf("segment %q: %w", seg, ErrPathTraversal)
		}

		if decoded == "" || decoded == "." {
			continue
		}

		parts = append(parts, decoded)
	}

	p := filepath.Join(parts...)
	if !m.contains(p) {
		return "", fmt.Errorf("resolve %q: %w", p, ErrPathTraversal)
	}

	return p, nil
}

func (m *PathMapper) contains(p string) bool {
	if p == m.baseDir {
		return true
	}
	prefix := m.baseDir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}

// Relative returns absPath relative to the base directory using "/" as the
// separator, or "." for the base directory itself.
func (m *PathMapper) Relative(absPath string) (string, error) {
	p := filepath.Clean(absPath)
	if !m.contains(p) {
		return "", fmt.Errorf("relative %q: %w", absPath, ErrPathTraversal)
	}

	rel, err := filepath.Rel(m.baseDir, p)
	if err != nil {
		return "", fmt.Errorf("relative %q: %w", absPath, ErrPathTraversal)
	}

	return filepath.ToSlash(rel), nil
}

// PublicSegments returns the path of absPath relative to the base directory
// as individually percent-encoded segments. The base directory yields no
// segments.
func (m *PathMapper) PublicSegments(absPath string) ([]string, error) {
	rel, err := m.Relative(absPath)
	if err != nil {
		return nil, err
	}

	if rel == "." {
		return nil, nil
	}

	raw := strings.Split(rel, "/")
	segments := make([]string, len(raw))
	for i, s := range raw {
		segments[i] = url.PathEscape(s)
	}
	return segments, nil
}

// ToListingURL returns the public listing URL of a directory, always ending in "/".
func (m *PathMapper) ToListingURL(absPath string) (string, error) {
	segments, err := m.PublicSegments(absPath)
	if err != nil {
		return "", err
	}

	if len(segments) == 0 {
		return m.listingBase + "/", nil
	}
	return m.listingBase + "/" + strings.Join(segments, "/") + "/", nil
}

// ToDownloadURI returns the percent-encoded download path of a file. Its
// decoded form is what the proxy hashes, so any change here must keep both
// sides in agreement.
func (m *PathMapper) ToDownloadURI(absPath string) (string, error) {
	segments, err := m.PublicSegments(absPath)
	if err != nil {
		return "", err
	}

	if len(segments) == 0 {
		return "", fmt.Errorf("download uri for base directory: %w", ErrInvalidInput)
	}
	return m.downloadBase + "/" + strings.Join(segments, "/"), nil
}

// DisplayPath returns "/" followed by the decoded path of absPath relative to
// the base directory.
func (m *PathMapper) DisplayPath(absPath string) (string, error) {
	rel, err := m.Relative(absPath)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "/", nil
	}
	return "/" + rel, nil
}
