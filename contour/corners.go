package contour

// Corners identifies which of a cell's four corners are active.
// The code is (bl<<0)|(br<<1)|(tr<<2)|(tl<<3).
type Corners uint8

const (
	None   Corners = iota // no corner active
	BL                    // bottom-left
	BR                    // bottom-right
	BLBR                  // bottom edge
	TR                    // top-right
	TRBL                  // saddle: top-right + bottom-left
	TRBR                  // right edge
	TRBRBL                // all but top-left
	TL                    // top-left
	TLBL                  // left edge
	TLBR                  // saddle: top-left + bottom-right
	TLBRBL                // all but top-right
	TLTR                  // top edge
	TLTRBL                // all but bottom-right
	TLTRBR                // all but bottom-left
	All                   // every corner active
)

var cornerNames = [...]string{
	None:   "none",
	BL:     "bl",
	BR:     "br",
	BLBR:   "blbr",
	TR:     "tr",
	TRBL:   "trbl",
	TRBR:   "trbr",
	TRBRBL: "trbrbl",
	TL:     "tl",
	TLBL:   "tlbl",
	TLBR:   "tlbr",
	TLBRBL: "tlbrbl",
	TLTR:   "tltr",
	TLTRBL: "tltrbl",
	TLTRBR: "tltrbr",
	All:    "all",
}

func (c Corners) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return cornerNames[c]
}

// Valid reports whether c is one of the 16 configurations.
func (c Corners) Valid() bool {
	return c <= All
}

// Saddle reports whether c is one of the two ambiguous diagonal configurations.
func (c Corners) Saddle() bool {
	return c == TRBL || c == TLBR
}

// Edges returns the set of cell edges the contour crosses.
func (c Corners) Edges() EdgeSet {
	if !c.Valid() {
		return 0
	}
	return crossings[c]
}

// cornersFromBits builds a configuration from corner activations.
func cornersFromBits(tl, tr, br, bl bool) Corners {
	var c Corners
	if bl {
		c |= 1 << 0
	}
	if br {
		c |= 1 << 1
	}
	if tr {
		c |= 1 << 2
	}
	if tl {
		c |= 1 << 3
	}
	return c
}

// Edge is one side of a cell. Values follow crossing evaluation order.
type Edge uint8

const (
	Top Edge = iota
	Right
	Left
	Bottom
)

// edgeOrder is the fixed order crossing points are produced in.
var edgeOrder = [4]Edge{Top, Right, Left, Bottom}

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Right:
		return "right"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	}
	return "invalid"
}

// EdgeSet is a bitmask of edges.
type EdgeSet uint8

func edges(es ...Edge) EdgeSet {
	var s EdgeSet
	for _, e := range es {
		s |= 1 << e
	}
	return s
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool {
	return s&(1<<e) != 0
}

// Len returns the number of edges in the set.
func (s EdgeSet) Len() int {
	n := 0
	for _, e := range edgeOrder {
		if s.Has(e) {
			n++
		}
	}
	return n
}

// crossings maps every configuration to the edges crossed by the contour.
// Saddles cross all four edges and are split into two segments.
var crossings = [16]EdgeSet{
	None:   0,
	BL:     edges(Left, Bottom),
	BR:     edges(Right, Bottom),
	BLBR:   edges(Left, Right),
	TR:     edges(Top, Right),
	TRBL:   edges(Top, Left, Bottom, Right),
	TRBR:   edges(Top, Bottom),
	TRBRBL: edges(Top, Left),
	TL:     edges(Top, Left),
	TLBL:   edges(Top, Bottom),
	TLBR:   edges(Bottom, Right, Top, Left),
	TLBRBL: edges(Top, Right),
	TLTR:   edges(Right, Left),
	TLTRBL: edges(Right, Bottom),
	TLTRBR: edges(Bottom, Left),
	All:    0,
}

// Classify derives the configuration of the cell whose top-left corner is
// (row, col). Corners beyond the grid read as inactive.
func (g *Grid) Classify(row, col int) Corners {
	tl := g.At(row, col).Active
	return cornersFromBits(tl, g.active(row, col+1), g.active(row+1, col+1), g.active(row+1, col))
}
