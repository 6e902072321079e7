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

// Package util provides small helper functions which are
// not available in the GO standard library.
package util

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.German)

// Abs - non branching Abs function to determine the absolute value of an int
func Abs(n int) int {
	y := n >> 63
	return (n ^ y) - y
}

// Abs16 - non branching Abs function to determine the absolute value of an int16
func Abs16(n int16) int16 {
	y := n >> 15
	return (n ^ y) - y
}

// Min returns the smaller of the given integers
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger of the given integers
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Nps calculates nodes per second from a node count and a duration.
// Allows zero durations by adding one nanosecond.
func Nps(nodes uint64, duration time.Duration) uint64 {
	return uint64(int64(nodes) * time.Second.Nanoseconds() / (duration.Nanoseconds() + 1))
}

// MemStat returns a string with information about the applications
// memory usage and GC activity
func MemStat() string {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return out.Sprintf("Alloc: %d TotalAlloc: %d HeapAlloc: %d HeapObjects: %d NumGC: %d",
		mem.Alloc, mem.TotalAlloc, mem.HeapAlloc, mem.HeapObjects, mem.NumGC)
}

// ResolveFolder tries to find the given folder relative to the
// working directory or the executable's directory. Returns the
// absolute path or an error if the folder does not exist.
func ResolveFolder(folder string) (string, error) {
	if filepath.IsAbs(folder) {
		if _, err := os.Stat(folder); err != nil {
			return "", err
		}
		return folder, nil
	}
	// relative to working directory
	cwd, _ := os.Getwd()
	try := filepath.Join(cwd, folder)
	if _, err := os.Stat(try); err == nil {
		return try, nil
	}
	// relative to the executable
	exe, _ := os.Executable()
	try = filepath.Join(filepath.Dir(exe), folder)
	if _, err := os.Stat(try); err == nil {
		return try, nil
	}
	return "", os.ErrNotExist
}

// ResolveFile tries to find the given file relative to the working
// directory or the executable's directory. Returns the path it found
// or the unchanged input if the file does not exist anywhere.
func ResolveFile(file string) (string, error) {
	if filepath.IsAbs(file) {
		return file, nil
	}
	cwd, _ := os.Getwd()
	try := filepath.Join(cwd, file)
	if _, err := os.Stat(try); err == nil {
		return try, nil
	}
	exe, _ := os.Executable()
	try = filepath.Join(filepath.Dir(exe), file)
	if _, err := os.Stat(try); err == nil {
		return try, nil
	}
	return file, os.ErrNotExist
}

// IsDigit checks if the char is a digit 0-9
func IsDigit(l uint8) bool {
	return l >= '0' && l <= '9'
}
