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

// KestrelGo is a UCI compliant chess engine. Started without options
// it reads UCI commands from stdin until "quit" is received.
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kseidel/KestrelGo/internal/config"
	"github.com/kseidel/KestrelGo/internal/logging"
	"github.com/kseidel/KestrelGo/internal/movegen"
	"github.com/kseidel/KestrelGo/internal/position"
	"github.com/kseidel/KestrelGo/internal/search"
	"github.com/kseidel/KestrelGo/internal/uci"
	"github.com/kseidel/KestrelGo/internal/util"
	"github.com/kseidel/KestrelGo/internal/version"
)

var out = message.NewPrinter(language.German)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	logPath := flag.String("logpath", "./logs", "path where to write log files to")
	fen := flag.String("fen", position.StartFen, "fen for perft and nps test")
	perftDepth := flag.Int("perft", 0, "starts perft with the given depth on the position given with -fen")
	nps := flag.Int("nps", 0, "starts a nodes per second test for the given amount of seconds on the position given with -fen")
	prof := flag.Bool("profile", false, "write a cpu profile to the working directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *prof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	// config file needs to be set before config.Setup() is called,
	// otherwise the default is used
	config.ConfFile = *configFile
	config.Setup()

	// command line options overwrite config file settings
	if *logPath != "" {
		config.Settings.Log.LogPath = *logPath
	}
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}

	// reset the log level of the standard log - most packages hold
	// the standard logger as a global var created before main() runs
	logging.GetLog()

	// nps test
	if *nps != 0 {
		s := search.NewSearch()
		p := position.NewPosition(*fen)
		sl := search.NewSearchLimits()
		sl.TimeControl = true
		sl.MoveTime = time.Duration(*nps * int(time.Second))
		s.StartSearch(*p, *sl)
		s.WaitWhileSearching()
		out.Println()
		out.Println("NPS : ", util.Nps(s.NodesVisited(), s.LastSearchResult().SearchTime))
		return
	}

	// perft
	if *perftDepth != 0 {
		perftTest := movegen.NewPerft()
		perftTest.StartPerftMulti(*fen, 1, *perftDepth)
		return
	}

	// start the uci handler and wait for communication with the
	// UCI user interface
	u := uci.NewUciHandler()
	u.Loop()

	os.Exit(0)
}

func printVersionInfo() {
	out.Printf("KestrelGo %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
