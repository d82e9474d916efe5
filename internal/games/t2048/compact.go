package t2048

// slideLine slides and merges a single line toward index 0.
// Returns the updated line and the number of merges.
func slideLine(line []int) (result []int, merges int) {
	result = make([]int, len(line))
	writePos := 0
	mergedAt := -1

	for _, v := range line {
		if v == 0 {
			continue
		}

		if writePos > 0 && result[writePos-1] == v && mergedAt != writePos-1 {
			// Merge with previous tile
			result[writePos-1] *= 2
			mergedAt = writePos - 1
			merges++
		} else {
			result[writePos] = v
			writePos++
		}
	}

	return result, merges
}

// lineCells returns the cells of line i ordered from the edge of travel backwards.
func lineCells(rows, cols, i int, dir Direction) []Pos {
	var cells []Pos
	switch dir {
	case DirLeft:
		for c := range cols {
			cells = append(cells, Pos{Row: i, Col: c})
		}
	case DirRight:
		for c := cols - 1; c >= 0; c-- {
			cells = append(cells, Pos{Row: i, Col: c})
		}
	case DirUp:
		for r := range rows {
			cells = append(cells, Pos{Row: r, Col: i})
		}
	case DirDown:
		for r := rows - 1; r >= 0; r-- {
			cells = append(cells, Pos{Row: r, Col: i})
		}
	}
	return cells
}

// Compact applies a move to a value matrix in one step, without animation.
// Returns the new matrix, the number of merges, and whether anything changed.
func Compact(values [][]int, dir Direction) ([][]int, int, bool) {
	rows := len(values)
	if rows == 0 {
		return values, 0, false
	}
	cols := len(values[0])

	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
	}

	lines := rows
	if dir == DirUp || dir == DirDown {
		lines = cols
	}

	totalMerges := 0
	changed := false
	for i := range lines {
		cells := lineCells(rows, cols, i, dir)
		line := make([]int, len(cells))
		for k, p := range cells {
			line[k] = values[p.Row][p.Col]
		}

		slid, merges := slideLine(line)
		totalMerges += merges
		for k, p := range cells {
			out[p.Row][p.Col] = slid[k]
			if slid[k] != line[k] {
				changed = true
			}
		}
	}

	return out, totalMerges, changed
}

// CanMove reports whether any direction would change the board.
func CanMove(values [][]int) bool {
	for _, dir := range Directions {
		if _, _, changed := Compact(values, dir); changed {
			return true
		}
	}
	return false
}
