package flows

// CodeLength is the number of digits in an emailed verification code.
const CodeLength = 6

// DigitGrid models the 6-cell code entry widget: one digit per cell with a
// focus cursor that advances on entry and retreats on backspace. It is not
// safe for concurrent use; the owning flow serializes access.
type DigitGrid struct {
	cells [CodeLength]byte
	focus int
}

func NewDigitGrid() *DigitGrid {
	return &DigitGrid{}
}

// Enter places digit d ('0'..'9') into the focused cell and moves focus one
// cell right unless already at the last cell. Non-digits are ignored.
func (g *DigitGrid) Enter(d byte) {
	if d < '0' || d > '9' {
		return
	}
	g.cells[g.focus] = d
	if g.focus < CodeLength-1 {
		g.focus++
	}
}

// Backspace clears the focused cell if it holds a digit; otherwise it moves
// focus one cell left and clears that cell.
func (g *DigitGrid) Backspace() {
	if g.cells[g.focus] != 0 {
		g.cells[g.focus] = 0
		return
	}
	if g.focus > 0 {
		g.focus--
		g.cells[g.focus] = 0
	}
}

// Code returns the entered digits and whether all cells are filled.
func (g *DigitGrid) Code() (string, bool) {
	buf := make([]byte, 0, CodeLength)
	for _, c := range g.cells {
		if c == 0 {
			return "", false
		}
		buf = append(buf, c)
	}
	return string(buf), true
}

// SetCode fills the grid from a pasted string, keeping at most CodeLength
// digits and discarding everything else.
func (g *DigitGrid) SetCode(s string) {
	g.Clear()
	for i := 0; i < len(s); i++ {
		g.Enter(s[i])
	}
}

// Clear empties every cell and returns focus to the first one.
func (g *DigitGrid) Clear() {
	g.cells = [CodeLength]byte{}
	g.focus = 0
}

// Focus returns the index of the focused cell.
func (g *DigitGrid) Focus() int {
	return g.focus
}

// Digits returns the cells as a display string with spaces for empty cells.
func (g *DigitGrid) Digits() string {
	buf := make([]byte, CodeLength)
	for i, c := range g.cells {
		if c == 0 {
			buf[i] = ' '
		} else {
			buf[i] = c
		}
	}
	return string(buf)
}
