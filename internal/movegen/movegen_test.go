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
	. "github.com/kseidel/KestrelGo/internal/types"
)

const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestGenerateLegalMovesStartPos(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition()
	moves := mg.GenerateLegalMoves(p, GenAll)
	assert.Equal(t, 20, moves.Len())
}

func TestGenerateLegalMovesKiwipete(t *testing.T) {
	mg := NewMoveGen()
	p, err := position.NewPositionFen(kiwipeteFen)
	require.NoError(t, err)
	moves := mg.GenerateLegalMoves(p, GenAll)
	assert.Equal(t, 48, moves.Len())
	// both castling moves are legal here
	assert.True(t, moves.Contains(MakeMove(SqE1, SqG1, FlagCastling, PtNone, PtNone)))
	assert.True(t, moves.Contains(MakeMove(SqE1, SqC1, FlagCastling, PtNone, PtNone)))
}

func TestGenerateEvasions(t *testing.T) {
	// white king on e1 in check by the queen on h4
	p, err := position.NewPositionFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(p, GenAll)
	// every generated evasion must resolve the check
	assert.Greater(t, moves.Len(), 0)
	for _, m := range *moves {
		p.DoMove(m)
		assert.True(t, p.WasLegalMove(), "move %s does not resolve the check", m.StringUci())
		p.UndoMove()
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// white king on e4 in double check by rook e8 and bishop h1
	p, err := position.NewPositionFen("4r2k/8/8/8/4K3/8/8/R6b w - - 0 1")
	require.NoError(t, err)
	require.True(t, p.HasCheck())
	require.Equal(t, 2, p.CheckersBb().PopCount())
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *moves {
		assert.Equal(t, SqE4, m.From(), "double check allows only king moves")
	}
}

func TestEnPassantGeneration(t *testing.T) {
	p, err := position.NewPositionFen("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(p, GenAll)
	// the e5 pawn can capture en passant on f6 but not on d6
	// (d5 was not the last double push)
	assert.True(t, moves.Contains(MakeMove(SqE5, SqF6, FlagEnPassant|FlagCapture, Pawn, PtNone)))
	assert.False(t, moves.Contains(MakeMove(SqE5, SqD6, FlagEnPassant|FlagCapture, Pawn, PtNone)))
}

func TestEnPassantPinnedIllegal(t *testing.T) {
	// after bxc6 e.p. both pawns leave the 5th rank and the rook
	// on h5 would capture the king on a5 - the en passant capture
	// must be filtered out
	p, err := position.NewPositionFen("8/8/8/KPp4r/8/8/6k1/8 w - c6 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(p, GenAll)
	assert.False(t, moves.Contains(MakeMove(SqB5, SqC6, FlagEnPassant|FlagCapture, Pawn, PtNone)))
}

func TestPromotionGeneration(t *testing.T) {
	p, err := position.NewPositionFen("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	mg := NewMoveGen()
	moves := mg.GenerateLegalMoves(p, GenAll)
	// four promotion moves plus five king moves
	count := 0
	for _, m := range *moves {
		if m.IsPromotion() {
			count++
		}
	}
	assert.Equal(t, 4, count)
	assert.True(t, moves.Contains(MakeMove(SqA7, SqA8, FlagPromotion, PtNone, Queen)))
	assert.True(t, moves.Contains(MakeMove(SqA7, SqA8, FlagPromotion, PtNone, Knight)))
}

func TestHasLegalMove(t *testing.T) {
	mg := NewMoveGen()

	p := position.NewPosition()
	assert.True(t, mg.HasLegalMove(p))

	// stalemate position - black to move
	p, err := position.NewPositionFen("k7/8/1Q6/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, mg.HasLegalMove(p))
	assert.False(t, p.HasCheck())

	// checkmate position - back rank mate
	p, err = position.NewPositionFen("R5k1/5ppp/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, mg.HasLegalMove(p))
	assert.True(t, p.HasCheck())
}

func TestMoveUciRoundTrip(t *testing.T) {
	// for every legal move of the seed positions the uci string
	// must parse back to the identical move
	fens := []string{
		position.StartFen,
		kiwipeteFen,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
	}
	mg := NewMoveGen()
	parseMg := NewMoveGen()
	for _, fen := range fens {
		p, err := position.NewPositionFen(fen)
		require.NoError(t, err)
		moves := mg.GenerateLegalMoves(p, GenAll).Clone()
		for _, m := range *moves {
			parsed := parseMg.GetMoveFromUci(p, m.StringUci())
			assert.Equal(t, m, parsed, "uci round trip failed for %s on %s", m.StringUci(), fen)
		}
	}
}

func TestGetMoveFromUci(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition()
	assert.Equal(t, MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone), mg.GetMoveFromUci(p, "e2e4"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "e2e5"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "xxxx"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, ""))
}

func TestMakeUnmakeAllLegalMoves(t *testing.T) {
	// make/unmake must restore fen and zobrist key exactly for
	// every legal move of the seed positions
	fens := []string{
		position.StartFen,
		kiwipeteFen,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r3k3/1P6/8/8/8/8/8/4K3 w q - 0 1",
	}
	mg := NewMoveGen()
	for _, fen := range fens {
		p, err := position.NewPositionFen(fen)
		require.NoError(t, err)
		keyBefore := p.ZobristKey()
		moves := mg.GenerateLegalMoves(p, GenAll).Clone()
		for _, m := range *moves {
			p.DoMove(m)
			assert.Equal(t, position.RecomputeZobrist(p), p.ZobristKey(),
				"incremental key mismatch after %s on %s", m.StringUci(), fen)
			p.UndoMove()
			assert.Equal(t, fen, p.StringFen(), "fen mismatch after undo of %s", m.StringUci())
			assert.Equal(t, keyBefore, p.ZobristKey(), "key mismatch after undo of %s", m.StringUci())
		}
	}
}
