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

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kseidel/KestrelGo/internal/config"
	"github.com/kseidel/KestrelGo/internal/position"
	. "github.com/kseidel/KestrelGo/internal/types"
)

func TestEvaluateStartPosition(t *testing.T) {
	e := NewEvaluator()
	p := position.NewPosition()
	// the start position is symmetric - only the tempo bonus remains
	assert.Equal(t, Value(config.Settings.Eval.Tempo), e.Evaluate(p))
}

func TestEvaluateSideRelative(t *testing.T) {
	e := NewEvaluator()
	// the evaluation must be from the view of the side to move -
	// the identical board with flipped side to move negates the
	// non-tempo part of the value
	fenWhite := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 1"
	fenBlack := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1"
	pWhite, err := position.NewPositionFen(fenWhite)
	require.NoError(t, err)
	pBlack, err := position.NewPositionFen(fenBlack)
	require.NoError(t, err)

	tempo := Value(config.Settings.Eval.Tempo)
	valueWhite := e.Evaluate(pWhite) - tempo
	valueBlack := e.Evaluate(pBlack) - tempo
	assert.Equal(t, valueWhite, -valueBlack)
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	e := NewEvaluator()
	// white is up a queen - a clearly winning eval for white
	p, err := position.NewPositionFen("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Greater(t, int(e.Evaluate(p)), 500)

	// same position from black's view is clearly losing
	p, err = position.NewPositionFen("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	require.NoError(t, err)
	assert.Less(t, int(e.Evaluate(p)), -500)
}

func TestEvaluateInsufficientMaterialIsDraw(t *testing.T) {
	e := NewEvaluator()
	p, err := position.NewPositionFen("8/8/8/8/8/8/8/kNK5 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, ValueDraw, e.Evaluate(p))
}

func TestEvaluatePassedPawn(t *testing.T) {
	e := NewEvaluator()
	// identical material - in the first position white has a protected
	// passed pawn on e5, in the second white's pawns are doubled and
	// isolated on the e-file
	pGood, err := position.NewPositionFen("4k3/8/8/4P3/3P4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	pBad, err := position.NewPositionFen("4k3/8/8/4P3/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, int(e.Evaluate(pGood)), int(e.Evaluate(pBad)))
}
