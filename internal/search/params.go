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

package search

import (
	"math"

	"github.com/kseidel/KestrelGo/internal/types"
)

// This file contains pre-computed parameters to support the search.
// Mostly for params too complex to be part of the search
// configuration.

// lmr is a lookup table for late move reductions in the dimensions
// depth and moves searched.
var lmr [32][64]int

// LmrReduction returns the search depth reduction for LMR depending
// on depth and moves searched.
func LmrReduction(depth int, movesSearched int) int {
	if depth >= 32 || movesSearched >= 64 {
		return lmr[31][63]
	}
	return lmr[depth][movesSearched]
}

func init() {
	for d := 0; d < 32; d++ {
		for m := 0; m < 64; m++ {
			switch {
			case d <= 3 || m <= 3:
				lmr[d][m] = 1
			default:
				lmr[d][m] = int(math.Round((float64(d)*0.7)*(float64(m)*0.005) + 1.0))
			}
		}
	}
}

var lmp [16]int

func init() {
	for d := 1; d < 16; d++ {
		lmp[d] = 6 + int(math.Pow(float64(d)+0.5, 1.3))
	}
}

// LmpMovesSearched returns a depth dependent move count limit for
// late move pruning.
func LmpMovesSearched(depth int) int {
	if depth >= 16 {
		return lmp[15]
	}
	return lmp[depth]
}

// futility pruning - margins per remaining depth
var fp = [7]types.Value{0, 100, 200, 300, 500, 900, 1200}

// reverse futility pruning - margins per remaining depth
var rfp = [4]types.Value{0, 200, 400, 800}

// aspiration window widening steps (half-widths)
var aspirationSteps = []types.Value{50, 200, types.ValueInf}
