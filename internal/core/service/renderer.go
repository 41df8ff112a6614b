package service

import (
	"respimg/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Renderer runs the resolution pipeline: resolver, planner, URL builder and assembler.
type Renderer struct {
	resolver  *Resolver
	planner   *Planner
	assembler *Assembler
}

func NewRenderer(cfg ImageConfig) (*Renderer, error) {
	planner, err := NewPlanner(cfg.DeviceSizes, cfg.ImageSizes)
	if err != nil {
		return nil, err
	}

	var cache *Cache[domain.AssetDescriptor]
	if cfg.CacheEnabled {
		cache = NewCache[domain.AssetDescriptor]()
	}

	return &Renderer{
		resolver:  NewResolver(cache),
		planner:   planner,
		assembler: NewAssembler(NewURLBuilder(cfg.BaseURL, cfg.Template, cfg.Quality)),
	}, nil
}

func (r *Renderer) Render(source domain.Source, request domain.DisplayRequest) (domain.RenderDescriptor, error) {
	descriptor, err := r.resolver.Resolve(source)
	if err != nil {
		return domain.RenderDescriptor{}, err
	}

	size, err := ResolveDisplay(descriptor, request)
	if err != nil {
		return domain.RenderDescriptor{}, err
	}

	if request.Unoptimized {
		return r.assembler.AssembleUnoptimized(descriptor, size, request), nil
	}

	breakpoints, err := r.planner.Plan(size, descriptor.IntrinsicWidth)
	if err != nil {
		return domain.RenderDescriptor{}, err
	}

	log.Debug().
		Str("path", descriptor.CanonicalPath).
		Ints("breakpoints", breakpoints).
		Int("width", size.Width).
		Int("height", size.Height).
		Msg("planned breakpoints")

	return r.assembler.Assemble(descriptor, size, breakpoints, request)
}
