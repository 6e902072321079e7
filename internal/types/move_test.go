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

func TestMoveEncoding(t *testing.T) {
	m := MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.True(t, m.IsDoublePush())
	assert.False(t, m.IsCapture())
	assert.True(t, m.IsQuiet())
	assert.Equal(t, PtNone, m.Captured())

	m = MakeMove(SqE4, SqD5, FlagCapture, Pawn, PtNone)
	assert.True(t, m.IsCapture())
	assert.Equal(t, Pawn, m.Captured())
	assert.False(t, m.IsQuiet())

	m = MakeMove(SqE5, SqD6, FlagEnPassant|FlagCapture, Pawn, PtNone)
	assert.True(t, m.IsEnPassant())
	assert.True(t, m.IsCapture())

	m = MakeMove(SqE1, SqG1, FlagCastling, PtNone, PtNone)
	assert.True(t, m.IsCastling())

	m = MakeMove(SqE7, SqE8, FlagPromotion, PtNone, Queen)
	assert.True(t, m.IsPromotion())
	assert.Equal(t, Queen, m.Promoted())

	m = MakeMove(SqE7, SqD8, FlagPromotion|FlagCapture, Rook, Knight)
	assert.True(t, m.IsPromotion())
	assert.True(t, m.IsCapture())
	assert.Equal(t, Rook, m.Captured())
	assert.Equal(t, Knight, m.Promoted())
}

func TestMoveStringUci(t *testing.T) {
	assert.Equal(t, "e2e4", MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone).StringUci())
	assert.Equal(t, "e7e8q", MakeMove(SqE7, SqE8, FlagPromotion, PtNone, Queen).StringUci())
	assert.Equal(t, "e7e8n", MakeMove(SqE7, SqE8, FlagPromotion, PtNone, Knight).StringUci())
	assert.Equal(t, "e1g1", MakeMove(SqE1, SqG1, FlagCastling, PtNone, PtNone).StringUci())
	// the null move
	assert.Equal(t, "0000", MoveNone.StringUci())
}

func TestMoveIsValid(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	assert.True(t, MakeMove(SqE2, SqE4, 0, PtNone, PtNone).IsValid())
	assert.False(t, MakeMove(SqE2, SqE2, 0, PtNone, PtNone).IsValid())
	assert.True(t, MakeMove(SqE7, SqE8, FlagPromotion, PtNone, Queen).IsValid())
	assert.False(t, MakeMove(SqE7, SqE8, FlagPromotion, PtNone, Pawn).IsValid())
	assert.False(t, MakeMove(SqE7, SqE8, FlagPromotion, PtNone, King).IsValid())
}
