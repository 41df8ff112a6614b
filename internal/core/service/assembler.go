package service

import (
	"fmt"
	"respimg/internal/core/domain"
	"strings"
)

type Assembler struct {
	urls *URLBuilder
}

func NewAssembler(urls *URLBuilder) *Assembler {
	return &Assembler{urls: urls}
}

// Assemble combines the resolved pieces into a RenderDescriptor. The reserved box is always the display
// size so the layout does not shift whichever candidate the browser picks.
func (a *Assembler) Assemble(descriptor domain.AssetDescriptor, size domain.DisplaySize,
	breakpoints domain.BreakpointSet, request domain.DisplayRequest) (domain.RenderDescriptor, error) {
	if len(breakpoints) == 0 {
		return domain.RenderDescriptor{}, fmt.Errorf("%w: no breakpoints planned", domain.ErrInvalidDisplaySize)
	}

	sourceSet := make([]domain.SourceSetEntry, len(breakpoints))
	primary := -1
	for i, bp := range breakpoints {
		u, err := a.urls.BuildFor(descriptor, bp, request.Quality, request.Format)
		if err != nil {
			return domain.RenderDescriptor{}, err
		}

		sourceSet[i] = domain.SourceSetEntry{URL: u, Width: bp}
		if primary < 0 && bp >= size.Width {
			primary = i
		}
	}

	if primary < 0 {
		primary = len(sourceSet) - 1
	}

	return domain.RenderDescriptor{
		PrimarySrc:     sourceSet[primary].URL,
		SourceSet:      sourceSet,
		Sizes:          sizesHint(breakpoints, size.Width),
		ReservedWidth:  size.Width,
		ReservedHeight: size.Height,
		Alt:            request.Alt,
		Loading:        loading(request),
		Placeholder:    placeholder(descriptor, request),
	}, nil
}

// AssembleUnoptimized points a single candidate straight at the asset path.
func (a *Assembler) AssembleUnoptimized(descriptor domain.AssetDescriptor, size domain.DisplaySize,
	request domain.DisplayRequest) domain.RenderDescriptor {
	return domain.RenderDescriptor{
		PrimarySrc:     descriptor.CanonicalPath,
		SourceSet:      []domain.SourceSetEntry{{URL: descriptor.CanonicalPath, Width: size.Width}},
		Sizes:          fmt.Sprintf("%dpx", size.Width),
		ReservedWidth:  size.Width,
		ReservedHeight: size.Height,
		Alt:            request.Alt,
		Loading:        loading(request),
		Placeholder:    placeholder(descriptor, request),
	}
}

// sizesHint emits one "(max-width: Xpx) Ypx" rule per breakpoint followed by the display width as the
// default.
func sizesHint(breakpoints domain.BreakpointSet, displayWidth int) string {
	rules := make([]string, 0, len(breakpoints)+1)
	for _, bp := range breakpoints {
		rules = append(rules, fmt.Sprintf("(max-width: %dpx) %dpx", bp, min(bp, displayWidth)))
	}
	rules = append(rules, fmt.Sprintf("%dpx", displayWidth))

	return strings.Join(rules, ", ")
}

func loading(request domain.DisplayRequest) domain.Loading {
	if request.Priority {
		return domain.LoadingEager
	}

	return domain.LoadingLazy
}

func placeholder(descriptor domain.AssetDescriptor, request domain.DisplayRequest) string {
	if request.Placeholder != domain.PlaceholderBlur {
		return ""
	}

	return descriptor.Placeholder.DataURL()
}
