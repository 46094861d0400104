/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// Role is the semantic role assigned to a TextBlock by the (injected)
// semantic-role classifier (§4.10). Ordinals are the wire format used by
// the JSON-Lines serializer (§6).
type Role int

const (
	RoleParagraph Role = iota
	RoleTitle
	RoleHeading
	RoleAuthorInfo
	RoleAbstract
	RoleFormula
	RoleCaption
	RoleFootnote
	RoleReference
	RoleTableOfContents
	RolePageHeader
	RolePageFooter
	RoleMarginal
	RoleItemize
	RoleAffiliation
	RoleDate
)

// roleNames is the fixed ordinal -> lowercase-tag table from §6.
var roleNames = [...]string{
	RoleParagraph:       "paragraph",
	RoleTitle:           "title",
	RoleHeading:         "heading",
	RoleAuthorInfo:      "author_info",
	RoleAbstract:        "abstract",
	RoleFormula:         "formula",
	RoleCaption:         "caption",
	RoleFootnote:        "footnote",
	RoleReference:       "reference",
	RoleTableOfContents: "table_of_contents",
	RolePageHeader:      "page_header",
	RolePageFooter:      "page_footer",
	RoleMarginal:        "marginal",
	RoleItemize:         "itemize",
	RoleAffiliation:     "affiliation",
	RoleDate:            "date",
}

// NumRoles is the size of the fixed role list, used to size the role
// classifier's output tensor (§4.10).
const NumRoles = len(roleNames)

// String returns the lowercase tag for `r` (§6 JSON-Lines / txt `[ROLE]` prefix).
func (r Role) String() string {
	if int(r) < 0 || int(r) >= len(roleNames) {
		return "paragraph"
	}
	return roleNames[r]
}

// IsMarginalLike reports whether `r` is one of {TITLE, AUTHOR_INFO,
// MARGINAL}, the role set §4.10's primary y-cut policy treats specially.
func (r Role) IsMarginalLike() bool {
	return r == RoleTitle || r == RoleAuthorInfo || r == RoleMarginal
}

// TextBlock is a contiguous run of a segment's lines sharing one semantic
// unit (§4.9).
type TextBlock struct {
	Pos     Position
	Segment *PageSegment
	TrimBox geom.Rect
	Lines   []*TextLine
	Rank    int
	Role    Role

	IsEmphasized    bool
	IsLinesCentered bool
	HangingIndent   float64 // >= 0.

	PrevBlock *TextBlock
	NextBlock *TextBlock
}

func (b *TextBlock) Position() Position { return b.Pos }

// Text concatenates the block's line texts with a single space, used for
// Role-tensor construction and the `txt`/`jsonl` serializers (§6).
func (b *TextBlock) Text() string {
	s := ""
	for i, l := range b.Lines {
		if i > 0 {
			s += " "
		}
		s += l.Text
	}
	return s
}

// FontName returns the argmax font name over the block's lines (§4.9).
func (b *TextBlock) FontName() string {
	counts := map[string]int{}
	order := []string{}
	for _, l := range b.Lines {
		if l.FontName == "" {
			continue
		}
		if _, ok := counts[l.FontName]; !ok {
			order = append(order, l.FontName)
		}
		counts[l.FontName]++
	}
	best := ""
	bestCount := -1
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best
}

// FontSize returns the argmax font size over the block's lines (§4.9).
func (b *TextBlock) FontSize() float64 {
	counts := map[float64]int{}
	order := []float64{}
	for _, l := range b.Lines {
		if _, ok := counts[l.FontSize]; !ok {
			order = append(order, l.FontSize)
		}
		counts[l.FontSize]++
	}
	var best float64
	bestCount := -1
	for _, size := range order {
		if counts[size] > bestCount {
			best, bestCount = size, counts[size]
		}
	}
	return best
}
