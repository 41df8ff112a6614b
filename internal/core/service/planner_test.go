package service

import (
	"testing"

	"respimg/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanner(t *testing.T) {
	_, err := NewPlanner(nil, DefaultImageSizes)
	assert.Error(t, err)

	_, err = NewPlanner([]int{640, 0}, nil)
	assert.Error(t, err)

	p, err := NewPlanner([]int{828, 640, 640}, []int{16, 1000})
	require.NoError(t, err)
	assert.Equal(t, []int{16, 640, 828}, p.widths)
	assert.Equal(t, 828, p.maxDeviceWidth)
}

func TestPlanner_Plan(t *testing.T) {
	planner, err := NewPlanner(DefaultDeviceSizes, DefaultImageSizes)
	require.NoError(t, err)

	tests := []struct {
		name      string
		size      domain.DisplaySize
		intrinsic int
		want      domain.BreakpointSet
		wantErr   bool
	}{
		{
			name:      "exact width plus two larger standard widths",
			size:      domain.DisplaySize{Width: 100, Height: 100},
			intrinsic: 100,
			want:      domain.BreakpointSet{100, 128, 256},
		},
		{
			name: "standard width is not duplicated",
			size: domain.DisplaySize{Width: 640, Height: 480},
			want: domain.BreakpointSet{640, 750, 828},
		},
		{
			name: "raised to smallest supported width",
			size: domain.DisplaySize{Width: 10, Height: 10},
			want: domain.BreakpointSet{16, 32, 48},
		},
		{
			name:      "smaller intrinsic width is prepended",
			size:      domain.DisplaySize{Width: 200, Height: 100},
			intrinsic: 50,
			want:      domain.BreakpointSet{50, 200, 256, 384},
		},
		{
			name:      "larger intrinsic width is not added",
			size:      domain.DisplaySize{Width: 200, Height: 100},
			intrinsic: 4000,
			want:      domain.BreakpointSet{200, 256, 384},
		},
		{
			name: "only one larger standard width left",
			size: domain.DisplaySize{Width: 3000, Height: 2000},
			want: domain.BreakpointSet{3000, 3840},
		},
		{
			name: "largest device width",
			size: domain.DisplaySize{Width: 3840, Height: 2160},
			want: domain.BreakpointSet{3840},
		},
		{
			name: "wider than every device",
			size: domain.DisplaySize{Width: 5000, Height: 100},
			want: domain.BreakpointSet{5000},
		},
		{
			name:    "zero width",
			size:    domain.DisplaySize{Width: 0, Height: 100},
			wantErr: true,
		},
		{
			name:    "negative height",
			size:    domain.DisplaySize{Width: 100, Height: -1},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := planner.Plan(tc.size, tc.intrinsic)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidDisplaySize)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPlanner_PlanIsStrictlyIncreasing(t *testing.T) {
	planner, err := NewPlanner(DefaultDeviceSizes, DefaultImageSizes)
	require.NoError(t, err)

	for width := 1; width <= 4200; width += 7 {
		for _, intrinsic := range []int{0, 1, width / 2, width, width * 2} {
			set, err := planner.Plan(domain.DisplaySize{Width: width, Height: 1}, intrinsic)
			require.NoError(t, err)
			require.NotEmpty(t, set)

			for i := 1; i < len(set); i++ {
				require.Less(t, set[i-1], set[i], "width %d intrinsic %d: %v", width, intrinsic, set)
			}
		}
	}
}
