package markup

import (
	"fmt"
	"respimg/internal/core/domain"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Emitter renders RenderDescriptors as <img> elements.
type Emitter struct{}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Emit(descriptor domain.RenderDescriptor) (string, error) {
	if len(descriptor.SourceSet) == 0 {
		return "", fmt.Errorf("render descriptor for %q has no candidates", descriptor.PrimarySrc)
	}

	attrs := []html.Attribute{
		{Key: "alt", Val: descriptor.Alt},
		{Key: "src", Val: descriptor.PrimarySrc},
		{Key: "srcset", Val: descriptor.SrcSet()},
		{Key: "sizes", Val: descriptor.Sizes},
		{Key: "width", Val: strconv.Itoa(descriptor.ReservedWidth)},
		{Key: "height", Val: strconv.Itoa(descriptor.ReservedHeight)},
		{Key: "loading", Val: string(descriptor.Loading)},
		{Key: "decoding", Val: "async"},
	}

	if descriptor.Loading == domain.LoadingEager {
		attrs = append(attrs, html.Attribute{Key: "fetchpriority", Val: "high"})
	}

	if descriptor.Placeholder != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: blurStyle(descriptor.Placeholder)})
	}

	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Img,
		Data:     atom.Img.String(),
		Attr:     attrs,
	}

	var sb strings.Builder
	if err := html.Render(&sb, node); err != nil {
		return "", fmt.Errorf("error rendering img element: %w", err)
	}

	return sb.String(), nil
}

func blurStyle(dataURL string) string {
	return "color:transparent;background-size:cover;background-position:50% 50%;" +
		"background-repeat:no-repeat;background-image:url(\"" + dataURL + "\")"
}
