package linkshelf

import (
	"io/fs"
	"time"
)

// EntryKind classifies a filesystem entry.
type EntryKind int

const (
	KindOther EntryKind = iota
	KindDirectory
	KindFile
)

func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

// ClassifyMode maps a file mode to an EntryKind. Only plain directories and
// regular files get links; symlinks, sockets, pipes and devices are KindOther.
func ClassifyMode(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Entry is an immediate child of a listed directory.
type Entry struct {
	Name string
	Path string // slash-separated, relative to the base directory
	Kind EntryKind
}

// SignedLink is a download URL the edge proxy can validate on its own.
type SignedLink struct {
	URL       string `json:"url" yaml:"url"`
	ExpiresAt int64  `json:"expires_at" yaml:"expires_at"`
	Token     string `json:"token" yaml:"token"`
}

type ListingItem struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsDir     bool   `json:"is_dir"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

type Listing struct {
	Path     string        `json:"path"`
	Items    []ListingItem `json:"items"`
	Validity time.Duration `json:"-"`
}

// ValidityHours is the link validity rounded up to whole hours, as shown in listings.
func (l Listing) ValidityHours() int64 {
	return int64((l.Validity + time.Hour - 1) / time.Hour)
}
