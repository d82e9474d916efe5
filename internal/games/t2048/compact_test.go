package t2048

import (
	"reflect"
	"testing"
)

func TestSlideLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		merges   int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			merges:   1,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			merges:   1,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			merges:   2,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			merges:   1,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			merges:   1,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			merges:   1,
		},
		{
			name:     "empty line",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
		},
		{
			name:     "short line",
			input:    []int{0, 8},
			expected: []int{8, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, merges := slideLine(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if merges != tt.merges {
				t.Errorf("slideLine(%v) merges = %d, want %d", tt.input, merges, tt.merges)
			}
		})
	}
}

func TestCompactDirections(t *testing.T) {
	board := [][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 4},
		{2, 0, 0, 0},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      Direction
		expected [][]int
		merges   int
	}{
		{
			dir: DirLeft,
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{2, 0, 0, 0},
				{2, 0, 0, 0},
			},
			merges: 2,
		},
		{
			dir: DirRight,
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 0, 2},
				{0, 0, 0, 2},
			},
			merges: 2,
		},
		{
			dir: DirUp,
			expected: [][]int{
				{4, 2, 0, 4},
				{0, 4, 0, 2},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			merges: 1,
		},
		{
			dir: DirDown,
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 2, 0, 4},
				{4, 4, 0, 2},
			},
			merges: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got, merges, changed := Compact(board, tt.dir)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Compact(%s) = %v, want %v", tt.dir, got, tt.expected)
			}
			if merges != tt.merges {
				t.Errorf("Compact(%s) merges = %d, want %d", tt.dir, merges, tt.merges)
			}
			if !changed {
				t.Errorf("Compact(%s) reported no change", tt.dir)
			}
		})
	}
}

func TestCompactDoesNotMutateInput(t *testing.T) {
	board := [][]int{
		{2, 2},
		{0, 0},
	}
	Compact(board, DirLeft)
	if board[0][0] != 2 || board[0][1] != 2 {
		t.Errorf("input mutated: %v", board)
	}
}

func TestCanMove(t *testing.T) {
	tests := []struct {
		name  string
		board [][]int
		want  bool
	}{
		{
			name:  "empty cell",
			board: [][]int{{2, 4}, {8, 0}},
			want:  true,
		},
		{
			name:  "adjacent equal",
			board: [][]int{{2, 2}, {4, 8}},
			want:  true,
		},
		{
			name:  "locked",
			board: [][]int{{2, 4}, {4, 2}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMove(tt.board); got != tt.want {
				t.Errorf("CanMove(%v) = %v, want %v", tt.board, got, tt.want)
			}
		})
	}
}
