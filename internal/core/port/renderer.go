package port

import (
	"context"
	"respimg/internal/core/domain"
)

type ImageRenderer interface {
	// Render resolves a source and display request into a RenderDescriptor. Either a complete descriptor or
	// an error is returned, never both.
	Render(source domain.Source, request domain.DisplayRequest) (domain.RenderDescriptor, error)
}

type ImageProber interface {
	// Probe fetches the image at url and returns it as a static asset with its intrinsic metadata.
	Probe(ctx context.Context, url string) (domain.StaticAsset, error)
}

type MarkupEmitter interface {
	// Emit renders the descriptor as image markup.
	Emit(descriptor domain.RenderDescriptor) (string, error)
}
