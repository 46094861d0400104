/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

// Word is a maximal run of characters formed by §4.4's WordFormer.
type Word struct {
	Pos        Position
	Text       string
	Rank       int // rank of the word's first character.
	FontName   string
	FontSize   float64
	Characters []*Character

	IsFirstPartOfHyphenatedWord  *Word // weak ref to the virtual merged word.
	IsSecondPartOfHyphenatedWord *Word

	IsPartOfStackedMathSymbol *Word // weak ref to the base of the stack.
	IsBaseOfStackedMathSymbol *Word
}

func (w *Word) Position() Position { return w.Pos }
