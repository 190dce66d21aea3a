package linkshelf

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// DirectoryStore enumerates the immediate children of a directory given by a
// slash-separated path relative to the base directory.
type DirectoryStore interface {
	List(ctx context.Context, relPath string) ([]Entry, error)
}

// Signer mints signed download links for absolute file paths.
type Signer interface {
	Sign(absPath, hostname string) (SignedLink, error)
	Validity() time.Duration
}

// ListingService resolves listing requests to directories and builds the
// outbound link of every entry.
type ListingService struct {
	mapper *PathMapper
	store  DirectoryStore
	signer Signer
}

// NewListingService creates a ListingService.
func NewListingService(mapper *PathMapper, store DirectoryStore, signer Signer) (*ListingService, error) {
	if mapper == nil {
		return nil, fmt.Errorf("new listing service: nil path mapper: %w", ErrConfiguration)
	}
	if store == nil {
		return nil, fmt.Errorf("new listing service: nil directory store: %w", ErrConfiguration)
	}
	if signer == nil {
		return nil, fmt.Errorf("new listing service: nil signer: %w", ErrConfiguration)
	}

	return &ListingService{
		mapper: mapper,
		store:  store,
		signer: signer,
	}, nil
}

// List renders the directory named by the raw request segments. Directories
// get listing URLs, regular files get signed links and every other kind is
// left out. Items keep the store's order.
func (s *ListingService) List(ctx context.Context, segments []string, hostname string) (Listing, error) {
	dir, err := s.mapper.ToFilesystemPath(segments)
	if err != nil {
		return Listing{}, err
	}

	rel, err := s.mapper.Relative(dir)
	if err != nil {
		return Listing{}, err
	}

	entries, err := s.store.List(ctx, rel)
	if err != nil {
		return Listing{}, fmt.Errorf("list %q: %w", rel, err)
	}

	display, err := s.mapper.DisplayPath(dir)
	if err != nil {
		return Listing{}, err
	}

	listing := Listing{
		Path:     display,
		Items:    make([]ListingItem, 0, len(entries)),
		Validity: s.signer.Validity(),
	}

	for _, e := range entries {
		abs := filepath.Join(s.mapper.BaseDir(), filepath.FromSlash(e.Path))

		switch e.Kind {
		case KindDirectory:
			link, err := s.mapper.ToListingURL(abs)
			if err != nil {
				return Listing{}, err
			}
			listing.Items = append(listing.Items, ListingItem{
				Name:  e.Name,
				URL:   link,
				IsDir: true,
			})
		case KindFile:
			link, err := s.signer.Sign(abs, hostname)
			if err != nil {
				return Listing{}, err
			}
			listing.Items = append(listing.Items, ListingItem{
				Name:      e.Name,
				URL:       link.URL,
				ExpiresAt: link.ExpiresAt,
			})
		case KindOther:
			slog.Debug("skipping entry", "path", e.Path, "kind", e.Kind)
		}
	}

	return listing, nil
}
