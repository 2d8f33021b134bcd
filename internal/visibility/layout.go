package visibility

// Block is an ayah to lay out and its rendered height
type Block struct {
	ID     int
	Height float64
}

// Layout stacks blocks top to bottom starting at zero
func Layout(blocks []Block) []Unit {
	units := make([]Unit, 0, len(blocks))
	y := 0.0
	for _, b := range blocks {
		h := max(b.Height, 1)
		units = append(units, Unit{ID: b.ID, Top: y, Bottom: y + h})
		y += h
	}
	return units
}

// CenterOn returns a viewport of the given height centred on the unit with the
// given ID, and false when the unit is not in the list.
func CenterOn(units []Unit, unitID int, height float64) (Viewport, bool) {
	for _, u := range units {
		if u.ID == unitID {
			mid := u.Top + u.Height()/2
			return Viewport{Top: mid - height/2, Height: height}, true
		}
	}
	return Viewport{}, false
}

// PageViewport returns the viewport covering a page of perPage consecutive
// units. Pages are numbered from 1.
func PageViewport(units []Unit, page, perPage int) (Viewport, bool) {
	if page < 1 || perPage < 1 {
		return Viewport{}, false
	}
	first := (page - 1) * perPage
	if first >= len(units) {
		return Viewport{}, false
	}
	last := min(first+perPage, len(units)) - 1
	top, bottom := units[first].Top, units[last].Bottom
	return Viewport{Top: top, Height: bottom - top}, true
}

// PageOf returns the 1-based page containing the unit at the given 1-based position
func PageOf(position, perPage int) int {
	if position < 1 || perPage < 1 {
		return 1
	}
	return (position-1)/perPage + 1
}

// PageCount returns the number of pages needed for total units
func PageCount(total, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
