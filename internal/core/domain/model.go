package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Source is either a StaticAsset or a PathReference.
type Source interface {
	// SourcePath returns the raw path the source was created with.
	SourcePath() string
	isSource()
}

// StaticAsset is an image reference whose intrinsic metadata was extracted ahead of time, e.g. by a
// bundler's static import or by probing the image.
type StaticAsset struct {
	Path        string
	Width       int
	Height      int
	Placeholder *Placeholder
}

func (s StaticAsset) SourcePath() string { return s.Path }
func (StaticAsset) isSource()            {}

// PathReference is a literal image path without any known dimensions.
type PathReference string

func (p PathReference) SourcePath() string { return string(p) }
func (PathReference) isSource()            {}

// Placeholder is a tiny preview of an image shown while the real candidate loads.
type Placeholder struct {
	MimeType string
	Data     []byte
}

// DataURL encodes the placeholder as a base64 data URL.
func (p *Placeholder) DataURL() string {
	if p == nil || len(p.Data) == 0 {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", p.MimeType, base64.StdEncoding.EncodeToString(p.Data))
}

// AssetDescriptor is the canonical form of a Source. Intrinsic dimensions of 0 mean unknown.
type AssetDescriptor struct {
	CanonicalPath   string
	IntrinsicWidth  int
	IntrinsicHeight int
	Placeholder     *Placeholder
}

func (a AssetDescriptor) HasIntrinsicSize() bool {
	return a.IntrinsicWidth > 0 && a.IntrinsicHeight > 0
}

type PlaceholderMode string

const (
	PlaceholderEmpty PlaceholderMode = "empty"
	PlaceholderBlur  PlaceholderMode = "blur"
)

type Loading string

const (
	LoadingLazy  Loading = "lazy"
	LoadingEager Loading = "eager"
)

// DisplayRequest holds the caller's display parameters. A nil Width or Height means the value was
// not provided.
type DisplayRequest struct {
	Width       *int
	Height      *int
	Alt         string
	Quality     int
	Format      string
	Priority    bool
	Unoptimized bool
	Placeholder PlaceholderMode
}

// Px returns a pointer to a pixel value, for filling DisplayRequest dimensions.
func Px(v int) *int {
	return &v
}

// ParseDimension parses a width or height attribute such as "100" or "100px".
func ParseDimension(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(strings.TrimSuffix(s, "px"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a pixel value", ErrInvalidDisplaySize, s)
	}

	return &v, nil
}

// DisplaySize is the resolved footprint of a rendered image.
type DisplaySize struct {
	Width  int
	Height int
}

// BreakpointSet is a strictly increasing list of candidate widths.
type BreakpointSet []int

type SourceSetEntry struct {
	URL   string
	Width int
}

// RenderDescriptor carries everything a markup emitter needs to render an image.
type RenderDescriptor struct {
	PrimarySrc     string
	SourceSet      []SourceSetEntry
	Sizes          string
	ReservedWidth  int
	ReservedHeight int
	Alt            string
	Loading        Loading
	Placeholder    string
}

// SrcSet formats the source set as an HTML srcset attribute value.
func (r RenderDescriptor) SrcSet() string {
	parts := make([]string, len(r.SourceSet))
	for i, entry := range r.SourceSet {
		parts[i] = fmt.Sprintf("%s %dw", entry.URL, entry.Width)
	}

	return strings.Join(parts, ", ")
}

type Message struct {
	ID               int
	ChatID           int64
	Username string
	ImageURL string
	Text     string
}

type Action string

const (
	Typing Action = "typing"
)
