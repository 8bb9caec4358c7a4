package render

// colorRamps maps each supported color scale name to its ordered hex stops.
// The stops feed the ECharts visualMap inRange gradient, approximating the
// familiar matplotlib/plotly palettes of the same names.
var colorRamps = map[string][]string{
	"Viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"Cividis": {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838"},
	"Inferno": {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d03c", "#fcffa4"},
	"Plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"Magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"Jet":     {"#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000"},
	"Rainbow": {"#781c81", "#3f60ae", "#539eb6", "#6db388", "#cab843", "#e78532", "#d92120"},
	"Blues":   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Greens":  {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Reds":    {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"Purples": {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
}

// defaultRamp is used when the request carried no color scale.
var defaultRamp = colorRamps["Viridis"]

// rampFor returns the hex stops for a scale name, falling back to the
// default palette for the empty name. The resolver has already validated
// membership, so an unknown name here also falls back rather than failing.
func rampFor(scale string) []string {
	if ramp, ok := colorRamps[scale]; ok {
		return ramp
	}
	return defaultRamp
}
