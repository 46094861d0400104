/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.11's Dehyphenator: walks every block in reading order and
 * stitches a hyphen-broken word back together across consecutive lines.
 */

package dehyphen

import (
	"strings"

	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// Detect walks every block of `doc` in reading order and dehyphenates
// consecutive line pairs within the same block.
func Detect(doc *model.Document) {
	doc.AllBlocks(func(page *model.Page, b *model.TextBlock) {
		dehyphenateBlock(b)
	})
}

// dehyphenateBlock joins a line's trailing hyphenated word with the first
// word of the following line, within one block (§4.11).
func dehyphenateBlock(b *model.TextBlock) {
	for i := 0; i+1 < len(b.Lines); i++ {
		prev := b.Lines[i]
		curr := b.Lines[i+1]
		if len(prev.Words) == 0 || len(curr.Words) == 0 {
			continue
		}

		lastWord := prev.Words[len(prev.Words)-1]
		if !strings.HasSuffix(lastWord.Text, "-") {
			continue
		}
		firstWord := curr.Words[0]

		merged := &model.Word{
			Text: strings.TrimSuffix(lastWord.Text, "-") + firstWord.Text,
		}
		lastWord.IsFirstPartOfHyphenatedWord = merged
		firstWord.IsSecondPartOfHyphenatedWord = merged
	}
}
