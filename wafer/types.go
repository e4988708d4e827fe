package wafer

// Discipline selects the die fill strategy.
type Discipline int

const (
	// NoGrid packs every row independently along its chord.
	NoGrid Discipline = iota
	// Grid aligns die left edges across rows.
	Grid
)

// String returns a human-readable discipline name.
func (d Discipline) String() string {
	if d == Grid {
		return "grid"
	}
	return "no-grid"
}

// Geometry describes one die footprint on one wafer.
//
//	X, Y            — die width and height (mm), excluding the dicing gap
//	UsableDiameter  — wafer diameter minus twice the edge exclusion (mm)
//	Dicing          — scribe gap added to each die side (mm)
//	Fill            — fill discipline
type Geometry struct {
	X, Y           float64
	UsableDiameter float64
	Dicing         float64
	Fill           Discipline
}
