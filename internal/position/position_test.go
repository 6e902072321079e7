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

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/kseidel/KestrelGo/internal/types"
)

const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestStartPosition(t *testing.T) {
	p := NewPosition()
	require.NotNil(t, p)
	assert.Equal(t, StartFen, p.StringFen())
	assert.Equal(t, White, p.NextPlayer())
	assert.Equal(t, CastlingAny, p.CastlingRights())
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	assert.Equal(t, SqE1, p.KingSquare(White))
	assert.Equal(t, SqE8, p.KingSquare(Black))
	assert.Equal(t, 32, p.OccupiedAll().PopCount())
	assert.Equal(t, GamePhaseMax, p.GamePhase())
	assert.Equal(t, p.Material(White), p.Material(Black))
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		kiwipeteFen,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"7k/R7/6K1/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/k1K5 b - - 99 120",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		require.NoError(t, err, "fen: %s", fen)
		assert.Equal(t, fen, p.StringFen())
	}
}

func TestInvalidFen(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",              // missing fields
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",   // 7 ranks
		"xnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // invalid piece char
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // invalid side to move
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", // non numeric clock
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x", // non numeric move number
		"8/8/8/8/8/8/8/kK6 w - - 0 1 extra",                        // 7 fields
		"k7/8/8/8/8/8/8/K6K w - - 0 1",                             // two white kings
		"P7/8/8/8/8/8/8/k1K5 w - - 0 1",                            // pawn on rank 8
	}
	for _, fen := range invalid {
		_, err := NewPositionFen(fen)
		assert.Error(t, err, "fen should be invalid: %s", fen)
	}
	// trailing whitespace is tolerated
	_, err := NewPositionFen("k7/P7/8/8/8/8/8/K7 w - - 0 1 ")
	assert.NoError(t, err)
}

func TestDoUndoMoveNormal(t *testing.T) {
	p := NewPosition()
	fenBefore := p.StringFen()
	keyBefore := p.ZobristKey()

	e2e4 := MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone)
	p.DoMove(e2e4)
	assert.Equal(t, Black, p.NextPlayer())
	assert.Equal(t, SqE3, p.GetEnPassantSquare())
	assert.Equal(t, WhitePawn, p.GetPiece(SqE4))
	assert.Equal(t, PieceNone, p.GetPiece(SqE2))
	assert.Equal(t, p.ZobristKey(), RecomputeZobrist(p))

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, keyBefore, p.ZobristKey())
}

func TestDoUndoEnPassant(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)
	fenBefore := p.StringFen()
	keyBefore := p.ZobristKey()

	// e5xf6 en passant - the captured pawn is on f5, not on f6
	exf6 := MakeMove(SqE5, SqF6, FlagEnPassant|FlagCapture, Pawn, PtNone)
	p.DoMove(exf6)
	assert.Equal(t, WhitePawn, p.GetPiece(SqF6))
	assert.Equal(t, PieceNone, p.GetPiece(SqF5))
	assert.Equal(t, PieceNone, p.GetPiece(SqE5))
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	assert.Equal(t, p.ZobristKey(), RecomputeZobrist(p))

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, keyBefore, p.ZobristKey())
}

func TestDoUndoCastling(t *testing.T) {
	p, err := NewPositionFen(kiwipeteFen)
	require.NoError(t, err)
	fenBefore := p.StringFen()
	keyBefore := p.ZobristKey()

	oo := MakeMove(SqE1, SqG1, FlagCastling, PtNone, PtNone)
	p.DoMove(oo)
	assert.Equal(t, WhiteKing, p.GetPiece(SqG1))
	assert.Equal(t, WhiteRook, p.GetPiece(SqF1))
	assert.Equal(t, PieceNone, p.GetPiece(SqE1))
	assert.Equal(t, PieceNone, p.GetPiece(SqH1))
	assert.False(t, p.CastlingRights().Has(CastlingWhite))
	assert.True(t, p.CastlingRights().Has(CastlingBlack))
	assert.Equal(t, p.ZobristKey(), RecomputeZobrist(p))

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, keyBefore, p.ZobristKey())
}

func TestDoUndoPromotion(t *testing.T) {
	p, err := NewPositionFen("r3k3/1P6/8/8/8/8/8/4K3 w q - 0 1")
	require.NoError(t, err)
	fenBefore := p.StringFen()
	keyBefore := p.ZobristKey()

	// b7xa8Q - capturing promotion which also removes black's
	// queen side castling right
	bxa8Q := MakeMove(SqB7, SqA8, FlagPromotion|FlagCapture, Rook, Queen)
	p.DoMove(bxa8Q)
	assert.Equal(t, WhiteQueen, p.GetPiece(SqA8))
	assert.Equal(t, PieceNone, p.GetPiece(SqB7))
	assert.Equal(t, CastlingNone, p.CastlingRights())
	assert.Equal(t, p.ZobristKey(), RecomputeZobrist(p))

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, keyBefore, p.ZobristKey())
}

func TestRookCaptureClearsCastlingRights(t *testing.T) {
	// white rook captures the rook on h8 - black loses king side right
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	rxh8 := MakeMove(SqH1, SqH8, FlagCapture, Rook, PtNone)
	p.DoMove(rxh8)
	assert.False(t, p.CastlingRights().Has(CastlingBlackOO))
	assert.True(t, p.CastlingRights().Has(CastlingBlackOOO))
	assert.False(t, p.CastlingRights().Has(CastlingWhiteOO))
	assert.True(t, p.CastlingRights().Has(CastlingWhiteOOO))
	assert.Equal(t, p.ZobristKey(), RecomputeZobrist(p))
}

func TestDoUndoNullMove(t *testing.T) {
	p, err := NewPositionFen(kiwipeteFen)
	require.NoError(t, err)
	fenBefore := p.StringFen()
	keyBefore := p.ZobristKey()

	p.DoNullMove()
	assert.Equal(t, Black, p.NextPlayer())
	assert.NotEqual(t, keyBefore, p.ZobristKey())
	assert.Equal(t, p.ZobristKey(), RecomputeZobrist(p))
	p.UndoNullMove()

	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, keyBefore, p.ZobristKey())
}

func TestIsAttacked(t *testing.T) {
	p := NewPosition()
	// e4 push attacks d5 and f5
	p.DoMove(MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone))
	assert.True(t, p.IsAttacked(SqD5, White))
	assert.True(t, p.IsAttacked(SqF5, White))
	assert.False(t, p.IsAttacked(SqE5, White))
	// knight attacks
	assert.True(t, p.IsAttacked(SqF3, White))
	assert.True(t, p.IsAttacked(SqF6, Black))
}

func TestHasCheckAndCheckers(t *testing.T) {
	p, err := NewPositionFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, p.HasCheck())
	checkers := p.CheckersBb()
	assert.Equal(t, 1, checkers.PopCount())
	assert.Equal(t, SqH4, checkers.Lsb())
}

func TestGivesCheck(t *testing.T) {
	p, err := NewPositionFen("7k/R7/6K1/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)
	// Ra8 is mate (and check), Ra1 is no check
	assert.True(t, p.GivesCheck(MakeMove(SqA7, SqA8, 0, PtNone, PtNone)))
	assert.False(t, p.GivesCheck(MakeMove(SqA7, SqA1, 0, PtNone, PtNone)))
}

func TestCheckRepetitions(t *testing.T) {
	p := NewPosition()
	// shuffle the knights back and forth twice
	moves := []Move{
		MakeMove(SqG1, SqF3, 0, PtNone, PtNone),
		MakeMove(SqG8, SqF6, 0, PtNone, PtNone),
		MakeMove(SqF3, SqG1, 0, PtNone, PtNone),
		MakeMove(SqF6, SqG8, 0, PtNone, PtNone),
	}
	for _, m := range moves {
		p.DoMove(m)
	}
	// start position occurred now twice (initial + after sequence)
	assert.False(t, p.CheckRepetitions(2))
	for _, m := range moves {
		p.DoMove(m)
	}
	// after the second shuffle the position occurred three times
	assert.True(t, p.CheckRepetitions(2))
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		draw bool
	}{
		{"8/8/8/8/8/8/8/k1K5 w - - 0 1", true},          // lone kings
		{"8/8/8/8/8/8/8/kNK5 w - - 0 1", true},          // K+N vs K
		{"8/8/8/8/8/8/8/kBK5 w - - 0 1", true},          // K+B vs K
		{"8/8/8/8/8/8/NN6/k1K5 w - - 0 1", true},        // KNN vs K
		{"8/8/8/8/8/8/8/kBKB4 w - - 0 1", true},         // same colored bishops (b1+d1 both light? )
		{"8/8/8/8/8/8/P7/k1K5 w - - 0 1", false},        // pawn
		{"8/8/8/8/8/8/Q7/k1K5 w - - 0 1", false},        // queen
		{"8/8/8/8/8/8/R7/k1K5 w - - 0 1", false},        // rook
		{"8/8/8/8/8/8/BN6/k1K5 w - - 0 1", false},       // bishop + knight
	}
	for _, test := range tests {
		p, err := NewPositionFen(test.fen)
		require.NoError(t, err, test.fen)
		assert.Equal(t, test.draw, p.HasInsufficientMaterial(), test.fen)
	}
}

func TestZobristConsistencyOverGame(t *testing.T) {
	p := NewPosition()
	moves := []Move{
		MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone),
		MakeMove(SqE7, SqE5, FlagDoublePush, PtNone, PtNone),
		MakeMove(SqG1, SqF3, 0, PtNone, PtNone),
		MakeMove(SqB8, SqC6, 0, PtNone, PtNone),
		MakeMove(SqF1, SqB5, 0, PtNone, PtNone),
		MakeMove(SqG8, SqF6, 0, PtNone, PtNone),
		MakeMove(SqE1, SqG1, FlagCastling, PtNone, PtNone),
	}
	for _, m := range moves {
		p.DoMove(m)
		assert.Equal(t, RecomputeZobrist(p), p.ZobristKey(), "after move %s", m.StringUci())
	}
	for range moves {
		p.UndoMove()
		assert.Equal(t, RecomputeZobrist(p), p.ZobristKey())
	}
	assert.Equal(t, StartFen, p.StringFen())
}
