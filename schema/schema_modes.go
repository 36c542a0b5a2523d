package schema

// ModeDefinition describes one scoring mode for display purposes.
type ModeDefinition struct {
	Name    string             `json:"name"`
	Purpose string             `json:"purpose"`
	Rejects []string           `json:"rejects"`
	Weights map[string]float64 `json:"weights"`
	Formula string             `json:"formula"`
}

// ModesRenderModel contains all processed data needed for displaying the
// active scoring configuration.
type ModesRenderModel struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Version     string                `json:"version"`
	Modes       []ModeDefinition      `json:"modes"`
	Bounds      map[string]NormBounds `json:"bounds"`
}
