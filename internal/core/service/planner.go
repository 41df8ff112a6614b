package service

import (
	"errors"
	"fmt"
	"respimg/internal/core/domain"
	"slices"
)

// headroom is the number of standard widths planned above the displayed width for pinch-zoom and
// high-density screens.
const headroom = 2

type Planner struct {
	widths         []int
	maxDeviceWidth int
}

// NewPlanner builds a planner over the union of device and image sizes. The largest device size bounds
// the ladder.
func NewPlanner(deviceSizes, imageSizes []int) (*Planner, error) {
	if len(deviceSizes) == 0 {
		return nil, errors.New("at least one device size is required")
	}

	maxDeviceWidth := slices.Max(deviceSizes)

	widths := make([]int, 0, len(deviceSizes)+len(imageSizes))
	for _, w := range slices.Concat(deviceSizes, imageSizes) {
		if w <= 0 {
			return nil, fmt.Errorf("invalid configured width %d", w)
		}
		if w <= maxDeviceWidth {
			widths = append(widths, w)
		}
	}

	slices.Sort(widths)

	return &Planner{widths: slices.Compact(widths), maxDeviceWidth: maxDeviceWidth}, nil
}

// Plan computes the candidate widths for an image displayed at size. intrinsicWidth is 0 when unknown.
func (p *Planner) Plan(size domain.DisplaySize, intrinsicWidth int) (domain.BreakpointSet, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDisplaySize, size.Width, size.Height)
	}

	if size.Width > p.maxDeviceWidth {
		return domain.BreakpointSet{size.Width}, nil
	}

	start := max(size.Width, p.widths[0])
	set := domain.BreakpointSet{start}
	for _, w := range p.widths {
		if len(set) > headroom {
			break
		}
		if w > start {
			set = append(set, w)
		}
	}

	if intrinsicWidth > 0 && intrinsicWidth < set[0] {
		set = append(domain.BreakpointSet{intrinsicWidth}, set...)
	}

	return set, nil
}
