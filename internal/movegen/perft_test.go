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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kseidel/KestrelGo/internal/position"
)

// The perft anchors below are well known reference values for the
// correctness of a full legal move generation.
// https://www.chessprogramming.org/Perft_Results

func perftNodes(t *testing.T, fen string, depth int) uint64 {
	p, err := position.NewPositionFen(fen)
	require.NoError(t, err)
	perft := NewPerft()
	return perft.Perft(p, depth)
}

func TestPerftStartPosition(t *testing.T) {
	expected := []uint64{1, 20, 400, 8_902, 197_281, 4_865_609}
	maxDepth := 4
	if !testing.Short() {
		maxDepth = 5
	}
	for depth := 1; depth <= maxDepth; depth++ {
		assert.Equal(t, expected[depth], perftNodes(t, position.StartFen, depth),
			"perft(%d) on start position", depth)
	}
}

func TestPerftStartPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("perft(6) skipped in short mode")
	}
	assert.Equal(t, uint64(119_060_324), perftNodes(t, position.StartFen, 6))
}

func TestPerftKiwipete(t *testing.T) {
	expected := []uint64{1, 48, 2_039, 97_862, 4_085_603}
	maxDepth := 3
	if !testing.Short() {
		maxDepth = 4
	}
	for depth := 1; depth <= maxDepth; depth++ {
		assert.Equal(t, expected[depth], perftNodes(t, kiwipeteFen, depth),
			"perft(%d) on kiwipete", depth)
	}
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	expected := []uint64{1, 14, 191, 2_812, 43_238}
	for depth := 1; depth <= 4; depth++ {
		assert.Equal(t, expected[depth], perftNodes(t, fen, depth),
			"perft(%d) on position 3", depth)
	}
}

func TestPerftEnPassant(t *testing.T) {
	// position with a legal en passant capture on f6
	fen := "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"
	assert.Equal(t, uint64(908), perftNodes(t, fen, 2))
}

func TestPerftCounters(t *testing.T) {
	p, err := position.NewPositionFen(kiwipeteFen)
	require.NoError(t, err)
	perft := NewPerft()
	nodes := perft.Perft(p, 2)
	assert.Equal(t, uint64(2_039), nodes)
	// kiwipete depth 2: 351 captures, 1 en passant, 91 castles
	assert.Equal(t, uint64(351), perft.CaptureCounter)
	assert.Equal(t, uint64(1), perft.EnpassantCounter)
	assert.Equal(t, uint64(91), perft.CastleCounter)
	assert.Equal(t, uint64(3), perft.CheckCounter)
}
