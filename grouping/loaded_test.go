package grouping_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/purgeplan/grouping"
)

func TestLoaded_PicksMatchingSplit(t *testing.T) {
	layers, ms := oneLayer()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{3, 3}
	opts.MasterGroup = grouping.NoMaster
	opts.Loaded = &grouping.Loaded{
		Filaments: map[int]grouping.Filament{
			0: {Color: "#FF0000", Type: "PLA"},
			1: {Color: "#0000FF", Type: "PLA"},
			2: {Color: "#00FF00", Type: "PLA"},
		},
		Slots: [2][]grouping.Filament{
			{{Color: "#00FF00", Type: "PLA"}},
			{{Color: "#FF0000", Type: "PLA"}, {Color: "#0000FF", Type: "PLA"}},
		},
	}
	res, err := grouping.Group(layers, ms, opts)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1, 0}, res.Labels)
	require.Equal(t, 1.0, res.Cost)
}

func TestLoaded_MaterialMismatchLoses(t *testing.T) {
	layers, ms := oneLayer()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{3, 3}
	opts.MasterGroup = grouping.NoMaster
	opts.Loaded = &grouping.Loaded{
		Filaments: map[int]grouping.Filament{
			0: {Color: "#FFFFFF", Type: "PETG"},
			1: {Color: "#FFFFFF", Type: "PLA"},
			2: {Color: "#FFFFFF", Type: "PLA"},
		},
		Slots: [2][]grouping.Filament{
			{{Color: "#FFFFFF", Type: "PETG"}},
			{{Color: "#FFFFFF", Type: "PLA"}},
		},
	}
	res, err := grouping.Group(layers, ms, opts)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 1}, res.Labels)
}
