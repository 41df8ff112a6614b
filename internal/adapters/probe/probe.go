package probe

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"respimg/internal/adapters/file"
	"respimg/internal/core/domain"
	"respimg/internal/core/service"
	"strings"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PlaceholderWidth is the width of generated blur placeholders.
const PlaceholderWidth = 8

// MaxPlaceholderPixels bounds the images that are fully decoded for a placeholder.
const MaxPlaceholderPixels = 40_000_000

var placeholderPixelLimit = MaxPlaceholderPixels

type downloadFunc func(ctx context.Context, url string) ([]byte, error)

// Prober extracts intrinsic metadata from remote images, the runtime counterpart of a bundler's static
// image import.
type Prober struct {
	download downloadFunc
	cache    *service.Cache[domain.StaticAsset]
}

// NewProber creates a prober. Probes are memoized by URL when cache is not nil.
func NewProber(cache *service.Cache[domain.StaticAsset]) *Prober {
	return &Prober{download: file.DownloadFile, cache: cache}
}

func (p *Prober) Probe(ctx context.Context, url string) (domain.StaticAsset, error) {
	canonical, err := service.CanonicalPath(url)
	if err != nil {
		return domain.StaticAsset{}, err
	}

	if strings.HasPrefix(canonical, "/") {
		return domain.StaticAsset{}, fmt.Errorf("%w: only http(s) URLs can be probed, got %q",
			domain.ErrInvalidAssetPath, url)
	}

	if p.cache == nil {
		return p.probe(ctx, canonical)
	}

	return p.cache.Get(canonical, func() (domain.StaticAsset, error) {
		return p.probe(ctx, canonical)
	})
}

func (p *Prober) probe(ctx context.Context, url string) (domain.StaticAsset, error) {
	data, err := p.download(ctx, url)
	if err != nil {
		return domain.StaticAsset{}, fmt.Errorf("failed to download image: %w", err)
	}

	return Describe(url, data)
}

// Describe decodes the image header in data and returns the static asset for path. A placeholder is
// attached when the full image can be decoded and has at most MaxPlaceholderPixels pixels.
func Describe(path string, data []byte) (domain.StaticAsset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.StaticAsset{}, fmt.Errorf("%w: %w", domain.ErrInvalidAssetMetadata, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.StaticAsset{}, fmt.Errorf("%w: decoded %dx%d", domain.ErrInvalidAssetMetadata,
			cfg.Width, cfg.Height)
	}

	log.Debug().Str("path", path).Str("format", format).Int("width", cfg.Width).Int("height", cfg.Height).
		Msg("decoded image config")

	var placeholder *domain.Placeholder
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > int64(placeholderPixelLimit) {
		log.Warn().Str("path", path).Int64("pixels", pixels).Msg("image too large for a placeholder")
	} else {
		placeholder, err = blurPlaceholder(data)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not create placeholder")
		}
	}

	return domain.StaticAsset{
		Path:        path,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Placeholder: placeholder,
	}, nil
}

func blurPlaceholder(data []byte) (*domain.Placeholder, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w := min(PlaceholderWidth, b.Dx())
	h := max(1, int(math.Round(float64(b.Dy())*float64(w)/float64(b.Dx()))))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}

	return &domain.Placeholder{MimeType: "image/png", Data: buf.Bytes()}, nil
}
