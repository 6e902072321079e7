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

func TestSquareMapping(t *testing.T) {
	// little endian rank file mapping
	assert.Equal(t, Square(0), SqA1)
	assert.Equal(t, Square(7), SqH1)
	assert.Equal(t, Square(56), SqA8)
	assert.Equal(t, Square(63), SqH8)
	assert.Equal(t, Square(64), SqNone)

	assert.Equal(t, FileA, SqA1.FileOf())
	assert.Equal(t, FileH, SqH8.FileOf())
	assert.Equal(t, Rank1, SqH1.RankOf())
	assert.Equal(t, Rank8, SqA8.RankOf())

	assert.Equal(t, SqE4, SquareOf(FileE, Rank4))
	assert.Equal(t, SqNone, SquareOf(FileNone, Rank4))
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a1", SqA1.String())
	assert.Equal(t, "h8", SqH8.String())
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, "-", SqNone.String())
}

func TestMakeSquare(t *testing.T) {
	assert.Equal(t, SqA1, MakeSquare("a1"))
	assert.Equal(t, SqH8, MakeSquare("h8"))
	assert.Equal(t, SqNone, MakeSquare("i1"))
	assert.Equal(t, SqNone, MakeSquare("a9"))
	assert.Equal(t, SqNone, MakeSquare("a"))
}

func TestSquareTo(t *testing.T) {
	assert.Equal(t, SqE5, SqE4.To(North))
	assert.Equal(t, SqE3, SqE4.To(South))
	assert.Equal(t, SqF4, SqE4.To(East))
	assert.Equal(t, SqD4, SqE4.To(West))
	assert.Equal(t, SqF5, SqE4.To(Northeast))
	// no wrapping over the board edges
	assert.Equal(t, SqNone, SqH4.To(East))
	assert.Equal(t, SqNone, SqA4.To(West))
	assert.Equal(t, SqNone, SqA1.To(Southwest))
	assert.Equal(t, SqNone, SqH8.To(North))
}

func TestSquareDistance(t *testing.T) {
	assert.Equal(t, 7, SquareDistance(SqA1, SqH8))
	assert.Equal(t, 1, SquareDistance(SqE4, SqE5))
	assert.Equal(t, 2, SquareDistance(SqE4, SqG3))
	assert.Equal(t, 0, SquareDistance(SqE4, SqE4))
}
