package visualizer

// Options configures the visualization output.
type Options struct {
	// ShowConditions shows transition conditions as labels
	ShowConditions bool

	// ShowWeights includes fixed weights and weight function names in state
	// nodes
	ShowWeights bool

	// Direction controls diagram flow: "TD" (top-down) or "LR" (left-right)
	Direction string

	// HighlightPath highlights a specific state path through the diagram
	HighlightPath []string
}

// DefaultOptions returns sensible defaults for visualization.
func DefaultOptions() Options {
	return Options{
		ShowConditions: true,
		ShowWeights:    true,
		Direction:      "TD",
	}
}

// WithShowConditions enables/disables transition condition labels.
func (o Options) WithShowConditions(show bool) Options {
	o.ShowConditions = show

	return o
}

// WithShowWeights enables/disables weight annotations.
func (o Options) WithShowWeights(show bool) Options {
	o.ShowWeights = show

	return o
}

// WithDirection sets the diagram direction.
func (o Options) WithDirection(direction string) Options {
	o.Direction = direction

	return o
}

// WithHighlightPath sets states to highlight.
func (o Options) WithHighlightPath(path []string) Options {
	o.HighlightPath = path

	return o
}
