package port

import "context"

type AltTextGenerator interface {
	// GenerateAltText describes the image at imageURL in a form suitable for an alt attribute.
	GenerateAltText(ctx context.Context, imageURL string) (string, error)
}
