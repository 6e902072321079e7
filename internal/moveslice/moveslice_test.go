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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/kseidel/KestrelGo/internal/types"
)

var (
	e2e4 = MakeMove(SqE2, SqE4, FlagDoublePush, PtNone, PtNone)
	d2d4 = MakeMove(SqD2, SqD4, FlagDoublePush, PtNone, PtNone)
	g1f3 = MakeMove(SqG1, SqF3, 0, PtNone, PtNone)
)

func TestMoveSliceBasics(t *testing.T) {
	ms := NewMoveSlice(64)
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, 64, ms.Cap())

	ms.PushBack(e2e4)
	ms.PushBack(d2d4)
	ms.PushBack(g1f3)
	assert.Equal(t, 3, ms.Len())
	assert.Equal(t, e2e4, ms.Front())
	assert.Equal(t, g1f3, ms.Back())
	assert.Equal(t, d2d4, ms.At(1))
	assert.True(t, ms.Contains(d2d4))

	back := ms.PopBack()
	assert.Equal(t, g1f3, back)
	assert.Equal(t, 2, ms.Len())

	ms.Set(1, g1f3)
	assert.Equal(t, g1f3, ms.At(1))

	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, 64, ms.Cap())
}

func TestMoveSliceFilter(t *testing.T) {
	ms := NewMoveSlice(8)
	ms.PushBack(e2e4)
	ms.PushBack(d2d4)
	ms.PushBack(g1f3)

	ms.Filter(func(i int) bool { return ms.At(i) != d2d4 })
	assert.Equal(t, 2, ms.Len())
	assert.False(t, ms.Contains(d2d4))

	dest := NewMoveSlice(8)
	ms.FilterCopy(dest, func(i int) bool { return ms.At(i) == e2e4 })
	assert.Equal(t, 1, dest.Len())
	assert.Equal(t, e2e4, dest.Front())
}

func TestMoveSliceCloneEquals(t *testing.T) {
	ms := NewMoveSlice(8)
	ms.PushBack(e2e4)
	ms.PushBack(g1f3)

	clone := ms.Clone()
	assert.True(t, ms.Equals(clone))
	clone.PushBack(d2d4)
	assert.False(t, ms.Equals(clone))
}

func TestMoveSliceStringUci(t *testing.T) {
	ms := NewMoveSlice(8)
	ms.PushBack(e2e4)
	ms.PushBack(g1f3)
	assert.Equal(t, "e2e4 g1f3", ms.StringUci())
}
