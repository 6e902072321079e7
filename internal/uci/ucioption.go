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

package uci

import (
	"strconv"
	"strings"

	"github.com/kseidel/KestrelGo/internal/config"
)

// init defines all available uci options and stores them into the
// uciOptions map
func init() {
	uciOptions = map[string]*uciOption{
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearCache, OptionType: Button},
		"Hash": {NameID: "Hash", HandlerFunc: cacheSize, OptionType: Spin,
			DefaultValue: strconv.Itoa(config.Settings.Search.TTSize),
			CurrentValue: strconv.Itoa(config.Settings.Search.TTSize),
			MinValue:     "1", MaxValue: "2048"},
		"Threads": {NameID: "Threads", HandlerFunc: threads, OptionType: Spin,
			DefaultValue: strconv.Itoa(config.Settings.Search.Threads),
			CurrentValue: strconv.Itoa(config.Settings.Search.Threads),
			MinValue:     "1", MaxValue: "128"},
		"Ponder": {NameID: "Ponder", HandlerFunc: usePonder, OptionType: Check,
			DefaultValue: strconv.FormatBool(config.Settings.Search.UsePonder),
			CurrentValue: strconv.FormatBool(config.Settings.Search.UsePonder)},
	}
	sortOrderUciOptions = []string{
		"Clear Hash",
		"Hash",
		"Threads",
		"Ponder",
	}
}

// GetOptions returns all available uci options as a slice of strings
// to be sent to the UCI ui during the initialization phase of the
// UCI protocol
func (o *optionMap) GetOptions() *[]string {
	var options []string
	for _, opt := range sortOrderUciOptions {
		options = append(options, uciOptions[opt].String())
	}
	return &options
}

// String for uciOption returns a representation of the uci option as
// required by the UCI protocol during the initialization phase
func (o *uciOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case Check:
		os.WriteString("check default ")
		os.WriteString(o.DefaultValue)
	case Spin:
		os.WriteString("spin default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case Combo:
		os.WriteString("combo default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" var ")
		os.WriteString(o.VarValue)
	case Button:
		os.WriteString("button")
	case String:
		os.WriteString("string default ")
		os.WriteString(o.DefaultValue)
	}
	return os.String()
}

// uciOptionType is an enum representing the different UCI option types
type uciOptionType int

// uci option type constants
const (
	Check  uciOptionType = 0
	Spin   uciOptionType = 1
	Combo  uciOptionType = 2
	Button uciOptionType = 3
	String uciOptionType = 4
)

// optionHandler is a function type to be used as a function pointer
// in each uci option. Called when the "setoption" command changes
// the option.
type optionHandler func(*UciHandler, *uciOption)

// uciOption defines UCI options as described in the UCI protocol.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string
	CurrentValue string
}

// optionMap is a convenience type for a map of pointers to uci options
type optionMap map[string]*uciOption

// uciOptions stores all available uci options
var uciOptions optionMap

// sortOrderUciOptions controls the order of the options
var sortOrderUciOptions []string

// ////////////////////////////////////////////////////////////////
// HandlerFunc for uci option changes
// ////////////////////////////////////////////////////////////////

func clearCache(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
	log.Debug("Cleared cache")
}

func cacheSize(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	config.Settings.Search.TTSize = v
	u.mySearch.ResizeCache()
	log.Debugf("Set hash size to %v MB", config.Settings.Search.TTSize)
}

func threads(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	config.Settings.Search.Threads = v
	log.Debugf("Set threads to %v", config.Settings.Search.Threads)
}

func usePonder(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UsePonder = v
	log.Debugf("Set use ponder to %v", config.Settings.Search.UsePonder)
}
