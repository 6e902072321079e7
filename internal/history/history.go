/*
 * KestrelGo - a UCI chess engine in Go
 *
 * MIT License
 *
 * Copyright (c) 2022-2026 Konrad Seidel
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package history provides data structures to manage history driven
// move ordering tables (history counters and counter moves).
// Each search worker owns its own instance.
package history

import (
	. "github.com/kseidel/KestrelGo/internal/types"
)

// History is a data structure updated during search to provide the
// move ordering with information from earlier parts of the search.
type History struct {
	// HistoryCount is indexed by side, from and to square and is
	// incremented by depth*depth when a quiet move fails high
	HistoryCount [ColorLength][SqLength][SqLength]int64

	// CounterMoves stores the move which refuted the move given by
	// the from and to square index
	CounterMoves [SqLength][SqLength]Move
}

// NewHistory creates a new History instance.
func NewHistory() *History {
	return &History{}
}

// Inc raises the history counter for the given side and move by
// depth squared
func (h *History) Inc(c Color, m Move, depth int) {
	h.HistoryCount[c][m.From()][m.To()] += int64(depth) * int64(depth)
}

// Dec lowers the history counter for the given side and move.
// Never goes below zero.
func (h *History) Dec(c Color, m Move, depth int) {
	v := h.HistoryCount[c][m.From()][m.To()] - int64(depth)
	if v < 0 {
		v = 0
	}
	h.HistoryCount[c][m.From()][m.To()] = v
}

// Get returns the history counter for the given side and move
func (h *History) Get(c Color, m Move) int64 {
	return h.HistoryCount[c][m.From()][m.To()]
}

// Age halves all history counters to keep their magnitude bounded
// over long games and searches.
func (h *History) Age() {
	for c := 0; c < ColorLength; c++ {
		for f := 0; f < SqLength; f++ {
			for t := 0; t < SqLength; t++ {
				h.HistoryCount[c][f][t] >>= 1
			}
		}
	}
}
