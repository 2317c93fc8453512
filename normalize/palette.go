package normalize

import "github.com/theoremus-urban-solutions/tracemap/trace"

// Palette is the fallback color cycle, picked by trace index.
var Palette = []trace.Color{
	{65, 182, 196},
	{255, 127, 14},
	{44, 160, 44},
	{214, 39, 40},
	{148, 103, 189},
	{140, 86, 75},
	{227, 119, 194},
	{127, 127, 127},
	{188, 189, 34},
	{23, 190, 207},
}

// PaletteColor returns the palette entry for trace index i.
func PaletteColor(i int) trace.Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// UnknownProfile is used for traces without a configured profile.
var UnknownProfile = trace.Profile{Age: 0, Occupation: "Unknown", Description: ""}
