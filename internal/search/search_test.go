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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kseidel/KestrelGo/internal/config"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

func TestSearchMateInOne(t *testing.T) {
	s := NewSearch()
	p, err := position.NewPositionFen("7k/R7/6K1/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	sl := NewSearchLimits()
	sl.Depth = 3
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.Equal(t, "a7a8", result.BestMove.StringUci())
	assert.Equal(t, ValueCheckMate-1, result.BestValue)
	assert.True(t, result.BestValue.IsCheckMateValue())
}

func TestSearchMateInTwo(t *testing.T) {
	if testing.Short() {
		t.Skip("mate in two search skipped in short mode")
	}
	s := NewSearch()
	// KRK mate in 2, e.g. 1.Kb6 Kb8 2.Rh8#
	p, err := position.NewPositionFen("k7/8/2K5/8/8/8/8/7R w - - 0 1")
	require.NoError(t, err)

	sl := NewSearchLimits()
	sl.Depth = 5
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.Equal(t, ValueCheckMate-3, result.BestValue, "best move was %s", result.BestMove.StringUci())
}

func TestSearchStalemateAndMatePositions(t *testing.T) {
	// a position with no legal moves returns the null move
	s := NewSearch()
	p, err := position.NewPositionFen("k7/8/1Q6/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	sl := NewSearchLimits()
	sl.Depth = 3
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.Equal(t, MoveNone, result.BestMove)
	assert.Equal(t, "0000", result.BestMove.StringUci())

	// checkmate position - also no move
	p, err = position.NewPositionFen("R5k1/5ppp/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	result = s.LastSearchResult()
	assert.Equal(t, MoveNone, result.BestMove)
}

func TestSearchStopResponsiveness(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Infinite = true

	s.StartSearch(*p, *sl)
	assert.True(t, s.IsSearching())
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	s.StopSearch()
	elapsed := time.Since(start)

	assert.False(t, s.IsSearching())
	assert.True(t, s.HasResult())
	// target is 50ms - we allow 200ms headroom for busy CI machines
	assert.Less(t, int64(elapsed.Milliseconds()), int64(200), "stop took %s", elapsed)
	assert.NotEqual(t, MoveNone, s.LastSearchResult().BestMove)
}

func TestSearchDeterminism(t *testing.T) {
	// the same depth limited single threaded search from the same
	// position with an empty tt must return the same move and value
	runSearch := func() Result {
		s := NewSearch()
		p, _ := position.NewPositionFen("r1bqkb1r/pppp1ppp/2n2n2/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
		sl := NewSearchLimits()
		sl.Depth = 4
		s.StartSearch(*p, *sl)
		s.WaitWhileSearching()
		return s.LastSearchResult()
	}
	result1 := runSearch()
	result2 := runSearch()
	assert.Equal(t, result1.BestMove, result2.BestMove)
	assert.Equal(t, result1.BestValue, result2.BestValue)
}

func TestSearchDrawByFiftyMoves(t *testing.T) {
	// a position with half move clock at 99 - any quiet move ends
	// in a draw by the 50-moves rule
	s := NewSearch()
	p, err := position.NewPositionFen("7k/8/8/8/8/8/r7/4K3 w - - 99 120")
	require.NoError(t, err)
	sl := NewSearchLimits()
	sl.Depth = 4
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	// white is lost but the 50-moves rule saves the draw
	assert.Equal(t, ValueDraw, result.BestValue)
}

func TestSearchTimeControl(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = 200 * time.Millisecond

	start := time.Now()
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	elapsed := time.Since(start)

	assert.True(t, s.HasResult())
	assert.NotEqual(t, MoveNone, s.LastSearchResult().BestMove)
	// the search must respect the time limit with some headroom
	assert.Less(t, int64(elapsed.Milliseconds()), int64(1_000))
}

func TestSearchMultipleThreads(t *testing.T) {
	if testing.Short() {
		t.Skip("smp search skipped in short mode")
	}
	savedThreads := config.Settings.Search.Threads
	config.Settings.Search.Threads = 4
	defer func() { config.Settings.Search.Threads = savedThreads }()

	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Depth = 6
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	assert.True(t, s.HasResult())
	assert.NotEqual(t, MoveNone, s.LastSearchResult().BestMove)
}

func TestSearchNodeLimit(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Nodes = 10_000
	sl.Depth = MaxDepth
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	assert.True(t, s.HasResult())
	// some overshoot is possible as the limit is checked while
	// nodes are already in flight
	assert.Less(t, s.NodesVisited(), uint64(200_000))
}
