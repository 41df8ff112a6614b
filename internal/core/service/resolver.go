package service

import (
	"encoding/hex"
	"fmt"
	"math"
	"net/url"
	"path"
	"respimg/internal/core/domain"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

// Resolver turns a Source into an AssetDescriptor. With a cache attached, results are memoized per
// source key.
type Resolver struct {
	cache *Cache[domain.AssetDescriptor]
}

func NewResolver(cache *Cache[domain.AssetDescriptor]) *Resolver {
	return &Resolver{cache: cache}
}

func (r *Resolver) Resolve(source domain.Source) (domain.AssetDescriptor, error) {
	if r.cache == nil {
		return resolveSource(source)
	}

	key, err := sourceKey(source)
	if err != nil {
		return domain.AssetDescriptor{}, err
	}

	return r.cache.Get(key, func() (domain.AssetDescriptor, error) {
		log.Debug().Str("key", key).Int("cached", r.cache.Len()).Msg("resolving source")
		return resolveSource(source)
	})
}

func sourceKey(source domain.Source) (string, error) {
	switch s := source.(type) {
	case domain.StaticAsset:
		return fmt.Sprintf("static:%dx%d:%s:%s", s.Width, s.Height, placeholderDigest(s.Placeholder), s.Path), nil
	case domain.PathReference:
		return "path:" + string(s), nil
	default:
		return "", fmt.Errorf("%w: unsupported source %T", domain.ErrInvalidAssetPath, source)
	}
}

// placeholderDigest identifies placeholder content so that assets differing only in their preview do
// not share a cache entry.
func placeholderDigest(p *domain.Placeholder) string {
	if p == nil || len(p.Data) == 0 {
		return "-"
	}

	sum := blake3.Sum256(append([]byte(p.MimeType+";"), p.Data...))

	return hex.EncodeToString(sum[:])
}

func resolveSource(source domain.Source) (domain.AssetDescriptor, error) {
	switch s := source.(type) {
	case domain.StaticAsset:
		canonical, err := CanonicalPath(s.Path)
		if err != nil {
			return domain.AssetDescriptor{}, err
		}

		if s.Width <= 0 || s.Height <= 0 {
			return domain.AssetDescriptor{}, fmt.Errorf("%w: %s has dimensions %dx%d",
				domain.ErrInvalidAssetMetadata, s.Path, s.Width, s.Height)
		}

		log.Debug().Str("path", canonical).Int("width", s.Width).Int("height", s.Height).
			Msg("resolved static asset")

		return domain.AssetDescriptor{
			CanonicalPath:   canonical,
			IntrinsicWidth:  s.Width,
			IntrinsicHeight: s.Height,
			Placeholder:     s.Placeholder,
		}, nil
	case domain.PathReference:
		canonical, err := CanonicalPath(string(s))
		if err != nil {
			return domain.AssetDescriptor{}, err
		}

		log.Debug().Str("path", canonical).Msg("resolved path reference")

		return domain.AssetDescriptor{CanonicalPath: canonical}, nil
	default:
		return domain.AssetDescriptor{}, fmt.Errorf("%w: unsupported source %T", domain.ErrInvalidAssetPath, source)
	}
}

// CanonicalPath normalizes an image path. Local paths must start with a single slash and are cleaned;
// remote paths must be absolute http(s) URLs.
func CanonicalPath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidAssetPath)
	}

	if strings.HasPrefix(p, "//") {
		return "", fmt.Errorf("%w: protocol-relative path %q", domain.ErrInvalidAssetPath, raw)
	}

	u, err := url.Parse(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidAssetPath, err)
	}

	if strings.HasPrefix(p, "/") {
		u.Path = path.Clean(u.Path)
		return u.String(), nil
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q must start with a slash or be an absolute http(s) URL",
			domain.ErrInvalidAssetPath, raw)
	}

	return u.String(), nil
}

// ResolveDisplay determines the displayed footprint. Missing values fall back to the intrinsic size, or
// to the intrinsic aspect ratio when only one side is given.
func ResolveDisplay(descriptor domain.AssetDescriptor, request domain.DisplayRequest) (domain.DisplaySize, error) {
	if request.Width != nil && *request.Width <= 0 {
		return domain.DisplaySize{}, fmt.Errorf("%w: width %d", domain.ErrInvalidDisplaySize, *request.Width)
	}
	if request.Height != nil && *request.Height <= 0 {
		return domain.DisplaySize{}, fmt.Errorf("%w: height %d", domain.ErrInvalidDisplaySize, *request.Height)
	}

	switch {
	case request.Width != nil && request.Height != nil:
		return domain.DisplaySize{Width: *request.Width, Height: *request.Height}, nil
	case !descriptor.HasIntrinsicSize():
		return domain.DisplaySize{}, fmt.Errorf("%w: %s has no intrinsic size, width and height are required",
			domain.ErrMissingDimensions, descriptor.CanonicalPath)
	case request.Width != nil:
		return domain.DisplaySize{
			Width:  *request.Width,
			Height: scale(*request.Width, descriptor.IntrinsicHeight, descriptor.IntrinsicWidth),
		}, nil
	case request.Height != nil:
		return domain.DisplaySize{
			Width:  scale(*request.Height, descriptor.IntrinsicWidth, descriptor.IntrinsicHeight),
			Height: *request.Height,
		}, nil
	default:
		return domain.DisplaySize{Width: descriptor.IntrinsicWidth, Height: descriptor.IntrinsicHeight}, nil
	}
}

func scale(v, num, den int) int {
	return max(1, int(math.Round(float64(v)*float64(num)/float64(den))))
}
