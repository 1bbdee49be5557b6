package wbemu

// A Style is one of the ten white-balance / picture-style pairs the
// mapping parameters were trained on: five camera white balance
// settings crossed with two in-camera rendering styles.
type Style int

const(
	FluorescentAS Style = iota
	FluorescentCS
	ShadeAS
	ShadeCS
	TungstenAS
	TungstenCS
	CloudyAS
	CloudyCS
	DaylightAS
	DaylightCS
)

// Catalog order is load-bearing twice over: it matches the row layout
// of the trained mapping functions, and the tags appear verbatim in
// output filenames.
var(
	Styles = []Style{
		FluorescentAS, FluorescentCS,
		ShadeAS,       ShadeCS,
		TungstenAS,    TungstenCS,
		CloudyAS,      CloudyCS,
		DaylightAS,    DaylightCS,
	}

	styleTags = []string{
		"_F_AS", "_F_CS",
		"_S_AS", "_S_CS",
		"_T_AS", "_T_CS",
		"_C_AS", "_C_CS",
		"_D_AS", "_D_CS",
	}
)

func (s Style)String() string {
	if s < 0 || int(s) >= len(styleTags) {
		return "_?_??"
	}
	return styleTags[s]
}
