package knowledge

// DefaultFallbackModules is the fallback used when a goal matches nothing in
// the seed catalog.
var DefaultFallbackModules = []string{"python_basics"}

// SeedVersion is the catalog version of the bundled seed modules.
const SeedVersion = "v1.0.0"

// SeedModules returns the bundled introductory Python catalog.
func SeedModules() []Module {
	return []Module{
		{
			ID:                 "python_basics",
			Name:               "Python Basics",
			Description:        "Fundamental concepts of Python programming.",
			Topics:             []string{"variables", "data_types", "operators", "control_flow"},
			Keywords:           []string{"python basics", "basics"},
			EstimatedTimeHours: 4,
		},
		{
			ID:                 "variables",
			Name:               "Variables and Assignment",
			Description:        "Storing data in variables.",
			Keywords:           []string{"variable", "assignment"},
			EstimatedTimeHours: 0.5,
		},
		{
			ID:                 "data_types",
			Name:               "Basic Data Types",
			Description:        "Integers, Floats, Strings, Booleans.",
			Prerequisites:      []string{"variables"},
			Keywords:           []string{"data type", "strings", "integers"},
			EstimatedTimeHours: 1,
		},
		{
			ID:                 "operators",
			Name:               "Operators",
			Description:        "Arithmetic, Comparison, Logical Operators.",
			Prerequisites:      []string{"variables", "data_types"},
			Keywords:           []string{"operator", "arithmetic"},
			EstimatedTimeHours: 1,
		},
		{
			ID:                 "control_flow",
			Name:               "Control Flow",
			Description:        "Conditional statements (if/elif/else) and loops (for/while).",
			Prerequisites:      []string{"variables", "data_types", "operators"},
			Topics:             []string{"conditionals", "loops"},
			Keywords:           []string{"control flow"},
			EstimatedTimeHours: 1.5,
		},
		{
			ID:                 "conditionals",
			Name:               "Conditional Statements",
			Description:        "Using if, elif, and else.",
			Prerequisites:      []string{"operators"},
			Keywords:           []string{"conditional", "if statement"},
			EstimatedTimeHours: 0.75,
		},
		{
			ID:                 "loops",
			Name:               "Loops",
			Description:        "Using for and while loops.",
			Prerequisites:      []string{"operators"},
			Keywords:           []string{"loop"},
			EstimatedTimeHours: 0.75,
		},
		{
			ID:                 "functions",
			Name:               "Functions",
			Description:        "Defining and calling functions.",
			Prerequisites:      []string{"python_basics"},
			Topics:             []string{"defining_functions", "function_arguments", "return_values"},
			Keywords:           []string{"function"},
			EstimatedTimeHours: 3,
		},
	}
}

// SeedCatalog returns the bundled catalog with its version and fallback.
func SeedCatalog() *Catalog {
	return &Catalog{
		Version:         SeedVersion,
		FallbackModules: append([]string(nil), DefaultFallbackModules...),
		Modules:         SeedModules(),
	}
}
