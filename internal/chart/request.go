package chart

// Kind identifies a supported chart type.
type Kind string

const (
	KindGantt   Kind = "gantt"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
	KindLine    Kind = "line"
	KindHeatmap Kind = "heatmap"
)

// Kinds lists the supported chart kinds in presentation order.
var Kinds = []Kind{KindGantt, KindBar, KindScatter, KindLine, KindHeatmap}

// Valid reports whether k is a supported chart kind.
func (k Kind) Valid() bool {
	switch k {
	case KindGantt, KindBar, KindScatter, KindLine, KindHeatmap:
		return true
	}
	return false
}

// ColorScales is the fixed set of supported color scale names.
var ColorScales = []string{
	"Viridis", "Cividis", "Inferno", "Plasma", "Magma",
	"Jet", "Rainbow", "Blues", "Greens", "Reds", "Purples",
}

// ValidColorScale reports whether name is a member of ColorScales.
func ValidColorScale(name string) bool {
	for _, s := range ColorScales {
		if s == name {
			return true
		}
	}
	return false
}

// OptionalColumn is an explicit present/absent column selection. The zero
// value means the user left the selection empty.
type OptionalColumn struct {
	Name  string
	Valid bool
}

// Column creates a present OptionalColumn.
func Column(name string) OptionalColumn {
	return OptionalColumn{Name: name, Valid: true}
}

// Role names used in selections and error reporting.
const (
	RoleTask  = "task"
	RoleStart = "start"
	RoleEnd   = "end"
	RoleX     = "x"
	RoleY     = "y"
	RoleValue = "value"
	RoleColor = "color"
)

// Request is the user's chart choice: a kind plus the column selections that
// kind requires. Built fresh from user input on every chart-type change.
//
//   - Gantt uses Task, Start and End.
//   - Bar, Scatter and Line use X and Y, with Color optional.
//   - Heatmap uses X, Y and Value.
//
// ColorScale is optional; when empty the renderer's default palette applies.
type Request struct {
	Kind       Kind
	Task       string
	Start      string
	End        string
	X          string
	Y          string
	Value      string
	Color      OptionalColumn
	ColorScale string
}

// roleSelection pairs a role name with its selected column, preserving the
// validation order for that chart kind.
type roleSelection struct {
	role   string
	column string
}

// requiredSelections returns the required role selections for the request's
// kind in a fixed order, so validation errors are deterministic.
func (r *Request) requiredSelections() []roleSelection {
	switch r.Kind {
	case KindGantt:
		return []roleSelection{
			{RoleStart, r.Start},
			{RoleEnd, r.End},
			{RoleTask, r.Task},
		}
	case KindHeatmap:
		return []roleSelection{
			{RoleX, r.X},
			{RoleY, r.Y},
			{RoleValue, r.Value},
		}
	default:
		return []roleSelection{
			{RoleX, r.X},
			{RoleY, r.Y},
		}
	}
}
