package citygrow

import (
	"strconv"

	"citygrow/internal/core"
)

// Params holds the tunable lifetimes, probabilities and palette values
// for the simulation. Read-only while a cycle runs.
type Params struct {
	LifeTime       uint16
	LifeTimeBranch uint16

	PropCityToLand      float32
	PropLandToCity      float32
	PropBranchOffCity   float32
	PropBranchOffLand   float32
	PropBranchOffToMain float32
	BranchFallOff       float32
	LandDirectionalBias float32

	StartBranches int
	MaxStepsBack  int

	ChangeHueNewMain uint8
	LightnessDefault uint8
	LightnessBranch  uint8
	SaturationMain   uint8
	SaturationBranch uint8
	CityRectAlpha    float32

	ReverseActionsPerFrame int
	ReverseRampFrom        int
	ReverseRampSeconds     float64
	ReverseTPS             int
}

// Config controls the scene dimensions, cell scale and randomness.
type Config struct {
	Width  int
	Height int

	Scale float32
	Seed  int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  1920,
		Height: 1080,
		Scale:  2.0,
		Seed:   1337,
		Params: Params{
			LifeTime:               8000,
			LifeTimeBranch:         15,
			PropCityToLand:         0.12,
			PropLandToCity:         0.03,
			PropBranchOffCity:      0.15,
			PropBranchOffLand:      0.06,
			PropBranchOffToMain:    0.02,
			BranchFallOff:          50.0,
			LandDirectionalBias:    3.0,
			StartBranches:          3,
			MaxStepsBack:           50,
			ChangeHueNewMain:       11,
			LightnessDefault:       140,
			LightnessBranch:        60,
			SaturationMain:         255,
			SaturationBranch:       255,
			CityRectAlpha:          0.35,
			ReverseActionsPerFrame: 50,
			ReverseRampFrom:        8,
			ReverseRampSeconds:     1.5,
			ReverseTPS:             0,
		},
	}
}

// branchChance returns the unscaled branch-off probability for a mode.
func (p *Params) branchChance(mode BranchMode) float32 {
	if mode == ModeLand {
		return p.PropBranchOffLand
	}
	return p.PropBranchOffCity
}

// ScaledBranchChance returns the per-branch branch-off probability for
// a population of n active branches. The falloff term damps branching
// as the population grows so the branch count stays bounded.
func (p *Params) ScaledBranchChance(mode BranchMode, n int) float32 {
	return p.branchChance(mode) * (1 + p.BranchFallOff) / (p.BranchFallOff + float32(n))
}

// FromMap populates the config from a flat key/value map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	parseInt := func(key string, dst *int, min int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
				*dst = parsed
			}
		}
	}
	parseUint16 := func(key string, dst *uint16) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseUint(v, 10, 16); err == nil {
				*dst = uint16(parsed)
			}
		}
	}
	parseUint8 := func(key string, dst *uint8) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseUint(v, 10, 8); err == nil {
				*dst = uint8(parsed)
			}
		}
	}
	parseFloat32 := func(key string, dst *float32) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
				*dst = float32(parsed)
			}
		}
	}

	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Scale = float32(parsed)
		}
	}
	parseUint16("life_time", &c.Params.LifeTime)
	parseUint16("life_time_branch", &c.Params.LifeTimeBranch)
	parseFloat32("prop_city_to_land", &c.Params.PropCityToLand)
	parseFloat32("prop_land_to_city", &c.Params.PropLandToCity)
	parseFloat32("prop_branch_off_city", &c.Params.PropBranchOffCity)
	parseFloat32("prop_branch_off_land", &c.Params.PropBranchOffLand)
	parseFloat32("prop_branch_off_to_main", &c.Params.PropBranchOffToMain)
	parseFloat32("branch_fall_off", &c.Params.BranchFallOff)
	parseFloat32("land_directional_bias", &c.Params.LandDirectionalBias)
	parseInt("start_branches", &c.Params.StartBranches, 1)
	parseInt("max_steps_back", &c.Params.MaxStepsBack, 0)
	parseUint8("change_hue_new_main", &c.Params.ChangeHueNewMain)
	parseUint8("lightness_default", &c.Params.LightnessDefault)
	parseUint8("lightness_branch", &c.Params.LightnessBranch)
	parseUint8("saturation_main", &c.Params.SaturationMain)
	parseUint8("saturation_branch", &c.Params.SaturationBranch)
	parseFloat32("city_rect_alpha", &c.Params.CityRectAlpha)
	parseInt("reverse_actions_per_frame", &c.Params.ReverseActionsPerFrame, 1)
	parseInt("reverse_ramp_from", &c.Params.ReverseRampFrom, 1)
	if v, ok := cfg["reverse_ramp_seconds"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.ReverseRampSeconds = parsed
		}
	}
	parseInt("reverse_tps", &c.Params.ReverseTPS, 0)
	return c
}

// Parameters exposes the configuration as named tunables.
func (c *Config) Parameters() core.ParameterSnapshot {
	p := &c.Params
	fint := func(key, label string, v int, desc string) core.Parameter {
		return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v), Description: desc}
	}
	ffloat := func(key, label string, v float64, desc string) core.Parameter {
		return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64), Description: desc}
	}
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name:    "Lifetimes",
				Summary: "Tick budgets for main branches and short-lived children.",
				Params: []core.Parameter{
					fint("life_time", "Main lifetime", int(p.LifeTime), "ticks a seeded or promoted branch lives"),
					fint("life_time_branch", "Child lifetime", int(p.LifeTimeBranch), "ticks an unpromoted child lives; also the late-life city-override window"),
					fint("start_branches", "Start branches", p.StartBranches, "seed branches per cycle"),
					fint("max_steps_back", "Backtrack depth", p.MaxStepsBack, "how far a boxed-in branch searches its history"),
				},
			},
			{
				Name:    "Probabilities",
				Summary: "Per-tick transition and branching odds.",
				Params: []core.Parameter{
					ffloat("prop_city_to_land", "City to land", float64(p.PropCityToLand), "chance of switching to directional growth"),
					ffloat("prop_land_to_city", "Land to city", float64(p.PropLandToCity), "chance of switching to random-walk growth"),
					ffloat("prop_branch_off_city", "Branch off (city)", float64(p.PropBranchOffCity), "base branch-off chance in city mode"),
					ffloat("prop_branch_off_land", "Branch off (land)", float64(p.PropBranchOffLand), "base branch-off chance in land mode"),
					ffloat("prop_branch_off_to_main", "Promote child", float64(p.PropBranchOffToMain), "chance a child is promoted to a main branch"),
					ffloat("branch_fall_off", "Falloff", float64(p.BranchFallOff), "damps branching as the population grows"),
					ffloat("land_directional_bias", "Directional bias", float64(p.LandDirectionalBias), "higher values make land corridors straighter"),
				},
			},
			{
				Name:    "Palette",
				Summary: "HSLA presets; hue is inherited from the parent.",
				Params: []core.Parameter{
					fint("change_hue_new_main", "Promotion hue shift", int(p.ChangeHueNewMain), "hue offset applied when a child is promoted"),
					fint("lightness_default", "Main lightness", int(p.LightnessDefault), ""),
					fint("lightness_branch", "Child lightness", int(p.LightnessBranch), ""),
					fint("saturation_main", "Main saturation", int(p.SaturationMain), ""),
					fint("saturation_branch", "Child saturation", int(p.SaturationBranch), ""),
					ffloat("city_rect_alpha", "Block alpha", float64(p.CityRectAlpha), "opacity of the city block fill rectangles"),
					ffloat("scale", "Scale", float64(c.Scale), "pixels per half cell; also the stroke thickness"),
				},
			},
			{
				Name:    "Reverse",
				Summary: "Pacing of the erase phase.",
				Params: []core.Parameter{
					fint("reverse_actions_per_frame", "Erase budget", p.ReverseActionsPerFrame, "operations erased per frame once ramped up"),
					fint("reverse_ramp_from", "Ramp floor", p.ReverseRampFrom, "starting erase budget"),
					ffloat("reverse_ramp_seconds", "Ramp seconds", p.ReverseRampSeconds, "seconds to ease the budget up; 0 disables the ramp"),
					fint("reverse_tps", "Reverse throttle", p.ReverseTPS, "cap reverse steps per second; 0 runs every frame"),
				},
			},
		},
	}
}

// cellCounts derives the grid dimensions from the viewport. Cells sit
// on every other scale-sized step; the gaps between them host the city
// block fills.
func (c *Config) cellCounts() (int, int) {
	w := int(float32(c.Width)/c.Scale/2 + 0.5)
	h := int(float32(c.Height)/c.Scale/2 + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
