package service

import (
	"fmt"
	"respimg/internal/core/domain"
	"slices"
)

// ParityGranularity selects how strictly two renders of the same image are compared.
type ParityGranularity string

const (
	// ParityShape compares the reserved box, alt text, loading strategy, sizes hint and candidate widths.
	ParityShape ParityGranularity = "shape"
	// ParityExact additionally requires byte-identical URLs.
	ParityExact ParityGranularity = "exact"
)

func ParseParityGranularity(s string) (ParityGranularity, error) {
	switch g := ParityGranularity(s); g {
	case ParityShape, ParityExact:
		return g, nil
	case "":
		return ParityShape, nil
	default:
		return "", fmt.Errorf("unknown parity granularity %q", s)
	}
}

// CompareRenders lists the differences between a and b. An empty result means the renders are at parity.
func CompareRenders(a, b domain.RenderDescriptor, granularity ParityGranularity) []string {
	var diffs []string

	if a.ReservedWidth != b.ReservedWidth || a.ReservedHeight != b.ReservedHeight {
		diffs = append(diffs, fmt.Sprintf("reserved size %dx%d != %dx%d",
			a.ReservedWidth, a.ReservedHeight, b.ReservedWidth, b.ReservedHeight))
	}
	if a.Alt != b.Alt {
		diffs = append(diffs, fmt.Sprintf("alt %q != %q", a.Alt, b.Alt))
	}
	if a.Loading != b.Loading {
		diffs = append(diffs, fmt.Sprintf("loading %s != %s", a.Loading, b.Loading))
	}
	if a.Sizes != b.Sizes {
		diffs = append(diffs, fmt.Sprintf("sizes %q != %q", a.Sizes, b.Sizes))
	}

	aWidths, bWidths := candidateWidths(a), candidateWidths(b)
	if !slices.Equal(aWidths, bWidths) {
		diffs = append(diffs, fmt.Sprintf("candidate widths %v != %v", aWidths, bWidths))
	}

	if granularity != ParityExact {
		return diffs
	}

	if a.PrimarySrc != b.PrimarySrc {
		diffs = append(diffs, fmt.Sprintf("primary src %q != %q", a.PrimarySrc, b.PrimarySrc))
	}
	for i := range min(len(a.SourceSet), len(b.SourceSet)) {
		if a.SourceSet[i].URL != b.SourceSet[i].URL {
			diffs = append(diffs, fmt.Sprintf("candidate %dw url %q != %q",
				a.SourceSet[i].Width, a.SourceSet[i].URL, b.SourceSet[i].URL))
		}
	}

	return diffs
}

func candidateWidths(r domain.RenderDescriptor) []int {
	widths := make([]int, len(r.SourceSet))
	for i, entry := range r.SourceSet {
		widths[i] = entry.Width
	}

	return widths
}
