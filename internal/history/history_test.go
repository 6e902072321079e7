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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/kseidel/KestrelGo/internal/types"
)

func TestHistoryCount(t *testing.T) {
	h := NewHistory()
	m := MakeMove(SqE2, SqE4, 0, PtNone, PtNone)

	assert.Equal(t, int64(0), h.Get(White, m))

	h.Inc(White, m, 5)
	assert.Equal(t, int64(25), h.Get(White, m))
	h.Inc(White, m, 3)
	assert.Equal(t, int64(34), h.Get(White, m))
	// black is counted separately
	assert.Equal(t, int64(0), h.Get(Black, m))

	h.Dec(White, m, 4)
	assert.Equal(t, int64(30), h.Get(White, m))
	// never below zero
	h.Dec(White, m, 1000)
	assert.Equal(t, int64(0), h.Get(White, m))
}

func TestHistoryAge(t *testing.T) {
	h := NewHistory()
	m := MakeMove(SqE2, SqE4, 0, PtNone, PtNone)
	h.Inc(White, m, 10)
	assert.Equal(t, int64(100), h.Get(White, m))
	h.Age()
	assert.Equal(t, int64(50), h.Get(White, m))
	h.Age()
	assert.Equal(t, int64(25), h.Get(White, m))
}

func TestCounterMoves(t *testing.T) {
	h := NewHistory()
	prev := MakeMove(SqE7, SqE5, FlagDoublePush, PtNone, PtNone)
	counter := MakeMove(SqG1, SqF3, 0, PtNone, PtNone)
	h.CounterMoves[prev.From()][prev.To()] = counter
	assert.Equal(t, counter, h.CounterMoves[SqE7][SqE5])
}
