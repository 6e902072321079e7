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

package config

// evalConfiguration is a data structure to hold the configuration of
// the position evaluator.
type evalConfiguration struct {
	Tempo int16

	UseMobility   bool
	MobilityBonus [7]int16

	BishopPairBonus int16

	UseKingEval     bool
	PawnShieldBonus int16

	UsePawnEval          bool
	PawnIsolatedMidMalus int16
	PawnIsolatedEndMalus int16
	PawnDoubledMidMalus  int16
	PawnDoubledEndMalus  int16
	PawnPassedMidBonus   int16
	PawnPassedEndBonus   int16
}

// sets defaults which might be overwritten by config file.
func init() {
	Settings.Eval.Tempo = 10

	Settings.Eval.UseMobility = true
	// per piece type and attacked square (index by piece type)
	Settings.Eval.MobilityBonus = [7]int16{0, 0, 4, 3, 2, 1, 0}

	Settings.Eval.BishopPairBonus = 30

	Settings.Eval.UseKingEval = true
	Settings.Eval.PawnShieldBonus = 10

	Settings.Eval.UsePawnEval = true
	Settings.Eval.PawnIsolatedMidMalus = -10
	Settings.Eval.PawnIsolatedEndMalus = -20
	Settings.Eval.PawnDoubledMidMalus = -10
	Settings.Eval.PawnDoubledEndMalus = -20
	Settings.Eval.PawnPassedMidBonus = 20
	Settings.Eval.PawnPassedEndBonus = 40
}
