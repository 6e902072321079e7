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

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 0, Abs(0))
	assert.Equal(t, int16(7), Abs16(-7))
	assert.Equal(t, int16(7), Abs16(7))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, -2, Min(-1, -2))
	assert.Equal(t, -1, Max(-1, -2))
}

func TestNps(t *testing.T) {
	// the duration is padded by one nanosecond so the result may be
	// off by one
	nps := Nps(1_000_000, time.Second)
	assert.True(t, nps >= 999_999 && nps <= 1_000_000, "nps was %d", nps)
	nps = Nps(1_000_000, 500*time.Millisecond)
	assert.True(t, nps >= 1_999_999 && nps <= 2_000_000, "nps was %d", nps)
	// zero duration must not panic
	Nps(1_000_000, 0)
}

func TestFlag(t *testing.T) {
	var f Flag
	assert.False(t, f.IsSet())
	f.Set()
	assert.True(t, f.IsSet())
	f.Set() // idempotent
	assert.True(t, f.IsSet())
	f.Clear()
	assert.False(t, f.IsSet())
}

func TestIsDigit(t *testing.T) {
	assert.True(t, IsDigit('0'))
	assert.True(t, IsDigit('9'))
	assert.False(t, IsDigit('a'))
	assert.False(t, IsDigit(' '))
}
