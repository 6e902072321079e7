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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPieceEncoding(t *testing.T) {
	assert.Equal(t, WhitePawn, MakePiece(White, Pawn))
	assert.Equal(t, WhiteKing, MakePiece(White, King))
	assert.Equal(t, BlackPawn, MakePiece(Black, Pawn))
	assert.Equal(t, BlackQueen, MakePiece(Black, Queen))

	assert.Equal(t, White, WhiteKnight.ColorOf())
	assert.Equal(t, Black, BlackKnight.ColorOf())
	assert.Equal(t, Knight, WhiteKnight.TypeOf())
	assert.Equal(t, Knight, BlackKnight.TypeOf())

	// encoding per (color<<3)|type
	assert.Equal(t, Piece(1), WhitePawn)
	assert.Equal(t, Piece(6), WhiteKing)
	assert.Equal(t, Piece(9), BlackPawn)
	assert.Equal(t, Piece(14), BlackKing)
}

func TestPieceFromChar(t *testing.T) {
	assert.Equal(t, WhitePawn, PieceFromChar("P"))
	assert.Equal(t, WhiteKing, PieceFromChar("K"))
	assert.Equal(t, BlackQueen, PieceFromChar("q"))
	assert.Equal(t, BlackRook, PieceFromChar("r"))
	assert.Equal(t, PieceNone, PieceFromChar("x"))
	assert.Equal(t, PieceNone, PieceFromChar("-"))
}

func TestPieceTypeValues(t *testing.T) {
	assert.Equal(t, Value(100), Pawn.ValueOf())
	assert.Equal(t, Value(320), Knight.ValueOf())
	assert.Equal(t, Value(330), Bishop.ValueOf())
	assert.Equal(t, Value(500), Rook.ValueOf())
	assert.Equal(t, Value(900), Queen.ValueOf())

	assert.Equal(t, "N", Knight.Char())
	assert.Equal(t, "K", King.Char())
	assert.True(t, Queen.IsValid())
	assert.False(t, PtNone.IsValid())
	assert.False(t, PtLength.IsValid())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "cp 100", Value(100).String())
	assert.Equal(t, "cp -50", Value(-50).String())
	// mate in 1 ply (we mate) and mate in 2 plies
	assert.Equal(t, "mate 1", (ValueCheckMate - 1).String())
	assert.Equal(t, "mate 1", (ValueCheckMate - 2).String())
	assert.Equal(t, "mate 2", (ValueCheckMate - 3).String())
	assert.Equal(t, "mate -1", (-ValueCheckMate + 1).String())
	assert.True(t, (ValueCheckMate - 10).IsCheckMateValue())
	assert.False(t, Value(100).IsCheckMateValue())
}
