package service

import (
	"fmt"
	"net/url"
	"respimg/internal/core/domain"
	"strconv"
	"strings"
)

// URLBuilder maps a path and width onto an image service URL. Without a template it produces the
// next/image loader form: {base}?url={path}&w={width}&q={quality}.
type URLBuilder struct {
	baseURL        string
	template       string
	defaultQuality int
}

func NewURLBuilder(baseURL, template string, defaultQuality int) *URLBuilder {
	if defaultQuality == 0 {
		defaultQuality = DefaultQuality
	}

	return &URLBuilder{baseURL: baseURL, template: template, defaultQuality: defaultQuality}
}

// Build returns the URL for path at width. A zero quality selects the default; the format hint is
// omitted when empty.
func (b *URLBuilder) Build(path string, width, quality int, format string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidAssetPath)
	}

	q := strconv.Itoa(b.quality(quality))
	w := strconv.Itoa(width)

	if b.template != "" {
		return strings.NewReplacer(
			"{path}", path,
			"{url}", url.QueryEscape(path),
			"{width}", w,
			"{quality}", q,
			"{format}", format,
		).Replace(b.template), nil
	}

	sep := "?"
	if strings.Contains(b.baseURL, "?") {
		sep = "&"
	}

	var sb strings.Builder
	sb.WriteString(b.baseURL)
	sb.WriteString(sep)
	sb.WriteString("url=")
	sb.WriteString(url.QueryEscape(path))
	sb.WriteString("&w=")
	sb.WriteString(w)
	sb.WriteString("&q=")
	sb.WriteString(q)
	if format != "" {
		sb.WriteString("&f=")
		sb.WriteString(url.QueryEscape(format))
	}

	return sb.String(), nil
}

// BuildFor builds the URL for a descriptor, never requesting more than the intrinsic width.
func (b *URLBuilder) BuildFor(descriptor domain.AssetDescriptor, width, quality int, format string) (string, error) {
	if descriptor.IntrinsicWidth > 0 {
		width = min(width, descriptor.IntrinsicWidth)
	}

	return b.Build(descriptor.CanonicalPath, width, quality, format)
}

func (b *URLBuilder) quality(q int) int {
	if q == 0 {
		return b.defaultQuality
	}

	return min(max(q, 1), 100)
}
