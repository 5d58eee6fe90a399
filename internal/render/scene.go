package render

// Line is the drawn form of an edge
type Line struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Circle is the drawn form of a node
type Circle struct {
	NodeID string  `json:"node_id"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	R      int     `json:"r"`
	Fill   string  `json:"fill"`
}

// Label is the centered text over a node
type Label struct {
	NodeID string  `json:"node_id"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Scene is everything currently drawn
type Scene struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Lines   []Line   `json:"lines"`
	Circles []Circle `json:"circles"`
	Labels  []Label  `json:"labels"`
}

// PositionsFrame carries the moving parts of the scene after a tick
type PositionsFrame struct {
	Tick    int      `json:"tick"`
	Lines   []Line   `json:"lines"`
	Circles []Circle `json:"circles"`
	Labels  []Label  `json:"labels"`
}

// ColorsFrame carries node fills after a selection or search change
type ColorsFrame struct {
	Fills []NodeFill `json:"fills"`
}

// Surface receives frames as the scene changes
type Surface interface {
	DrawPositions(frame PositionsFrame)
	DrawColors(frame ColorsFrame)
}
