/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.10's semantic-role classification input preparation (the
 * fifteen-float layout tensor and the BPE words tensor) plus the injected
 * Classifier interface the neural model itself sits behind, since the model
 * is an external collaborator deliberately excluded here (§1).
 */

package role

import (
	"strings"
	"unicode"

	"github.com/ad-freiburg/pdftotextplus-go/bpe"
	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// WordsTensorLength is §4.12's fixed words-tensor padding/truncation length.
const WordsTensorLength = 100

// NumLayoutFeatures is the fixed width of one layout-tensor row (§4.10).
const NumLayoutFeatures = 15

// Classifier maps a batch of blocks' layout and words tensors to per-role
// probabilities (§4.10). The neural model itself is an external
// collaborator; this interface is the seam it plugs into.
type Classifier interface {
	Classify(layout [][]float64, words [][]int32) [][]float64
}

// DefaultClassifier is the deterministic fallback used when no model is
// injected or role prediction is disabled: every block gets RoleParagraph
// with full confidence (§7's Model-load error-kind note: "the pipeline may
// continue with all blocks assigned a default role of PARAGRAPH").
type DefaultClassifier struct{}

func (DefaultClassifier) Classify(layout [][]float64, words [][]int32) [][]float64 {
	out := make([][]float64, len(layout))
	for i := range layout {
		row := make([]float64, model.NumRoles)
		row[model.RoleParagraph] = 1
		out[i] = row
	}
	return out
}

// Detect assigns a Role to every block of every page. When role prediction
// is disabled, blocks keep their zero-value Role (RoleParagraph) and the
// classifier is never invoked.
func Detect(doc *model.Document, cfg *config.Config, classifier Classifier, enc *bpe.Encoder) {
	if cfg.DisableSemanticRolesPrediction {
		return
	}

	minFS, maxFS := fontSizeRange(doc)

	for _, page := range doc.Pages {
		if len(page.Blocks) == 0 {
			continue
		}

		layout := make([][]float64, len(page.Blocks))
		words := make([][]int32, len(page.Blocks))
		for i, b := range page.Blocks {
			layout[i] = BuildLayoutTensor(b, page, doc, minFS, maxFS)
			words[i] = BuildWordsTensor(b, enc)
		}

		probs := classifier.Classify(layout, words)
		for i, b := range page.Blocks {
			if i >= len(probs) {
				continue
			}
			b.Role = argmaxRole(probs[i])
		}
	}
}

// fontSizeRange scans every block of every page once for the document-wide
// min/max font size §4.10's layout tensor normalizes against.
func fontSizeRange(doc *model.Document) (float64, float64) {
	min, max := 0.0, 0.0
	seen := false
	for _, page := range doc.Pages {
		for _, b := range page.Blocks {
			fs := b.FontSize()
			if !seen {
				min, max, seen = fs, fs, true
				continue
			}
			if fs < min {
				min = fs
			}
			if fs > max {
				max = fs
			}
		}
	}
	return min, max
}

func argmaxRole(probs []float64) model.Role {
	best := model.Role(0)
	bestProb := -1.0
	for i, p := range probs {
		if p > bestProb {
			bestProb = p
			best = model.Role(i)
		}
	}
	return best
}

// BuildLayoutTensor computes §4.10's fifteen-feature normalized layout row
// for one block.
func BuildLayoutTensor(b *model.TextBlock, page *model.Page, doc *model.Document, minFontSize, maxFontSize float64) []float64 {
	numPages := doc.NumPages()
	pageNorm := 0.0
	if numPages > 1 {
		pageNorm = float64(page.PageNum-1) / float64(numPages-1)
	}

	width, height := page.Width, page.Height
	left, right, upper, lower := b.Pos.Left, b.Pos.Right, b.Pos.Upper, b.Pos.Lower

	fontSize := b.FontSize()
	fsNorm := 0.0
	if maxFontSize > minFontSize {
		fsNorm = (fontSize - minFontSize) / (maxFontSize - minFontSize)
	}

	fontName := b.FontName()
	font := doc.Fonts[fontName]
	isBold := font != nil && font.IsBold()
	isItalic := font != nil && font.IsItalic

	text := b.Text()

	row := make([]float64, NumLayoutFeatures)
	row[0] = pageNorm
	row[1] = divOrZero(left, width)
	row[2] = divOrZero(height-lower, height)
	row[3] = divOrZero(right, width)
	row[4] = divOrZero(height-upper, height)
	row[5] = fsNorm
	row[6] = boolToFloat(isBold)
	row[7] = boolToFloat(isItalic)
	row[8] = boolToFloat(strings.ContainsRune(text, '@'))
	row[9] = boolToFloat(firstCharIsDigit(text))
	row[10] = percentDigits(text)
	row[11] = percentNonASCII(text)
	row[12] = percentPunctuation(text)
	row[13] = percentWordsStartingUppercase(text)
	row[14] = percentUppercaseChars(text)
	return row
}

// BuildWordsTensor applies the BPE encoder to a block's text and
// pads/truncates it to WordsTensorLength token ids (§4.10, §4.12).
func BuildWordsTensor(b *model.TextBlock, enc *bpe.Encoder) []int32 {
	return enc.Encode(b.Text(), WordsTensorLength)
}

func divOrZero(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

func firstCharIsDigit(text string) bool {
	for _, r := range text {
		return unicode.IsDigit(r)
	}
	return false
}

func percentDigits(text string) float64 {
	digits, nonSpace := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return divOrZero(float64(digits), float64(nonSpace))
}

func percentNonASCII(text string) float64 {
	nonASCII, nonSpace := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if r > unicode.MaxASCII {
			nonASCII++
		}
	}
	return divOrZero(float64(nonASCII), float64(nonSpace))
}

func percentPunctuation(text string) float64 {
	punct, nonSpace := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if unicode.IsPunct(r) {
			punct++
		}
	}
	return divOrZero(float64(punct), float64(nonSpace))
}

func percentWordsStartingUppercase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	upper := 0
	for _, w := range words {
		for _, r := range w {
			if unicode.IsUpper(r) {
				upper++
			}
			break
		}
	}
	return float64(upper) / float64(len(words))
}

func percentUppercaseChars(text string) float64 {
	upper, letters := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return divOrZero(float64(upper), float64(letters))
}
