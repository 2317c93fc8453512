package normalize

import (
	"github.com/theoremus-urban-solutions/tracemap/config"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Meta is the static per-source data attached to a trace. Nil fields fall
// back to the palette and UnknownProfile.
type Meta struct {
	Color   *trace.Color
	Profile *trace.Profile
}

// MetaFromConfig indexes configured colors and profiles by trace name.
func MetaFromConfig(traces []config.TraceConfig) map[string]Meta {
	out := make(map[string]Meta, len(traces))
	for _, tc := range traces {
		var m Meta
		if len(tc.Color) == 3 {
			c := trace.Color{uint8(tc.Color[0]), uint8(tc.Color[1]), uint8(tc.Color[2])}
			m.Color = &c
		}
		if tc.Profile != (config.ProfileConfig{}) {
			p := trace.Profile{
				Age:         tc.Profile.Age,
				Occupation:  tc.Profile.Occupation,
				Description: tc.Profile.Description,
			}
			if p.Occupation == "" {
				p.Occupation = UnknownProfile.Occupation
			}
			m.Profile = &p
		}
		out[tc.Name] = m
	}
	return out
}
