// Package panel holds the expand/collapse state of an activity's text panel.
package panel

import "unicode/utf16"

// DescriptionThreshold is the description length above which a panel
// offers the expand toggle even without highlights.
const DescriptionThreshold = 220

// Panel toggles between a clipped and a full view of a description plus
// an optional highlight list. The zero value is collapsed and not expandable.
type Panel struct {
	canExpand bool
	expanded  bool
}

// New returns a collapsed panel for the given text.
func New(description string, highlights []string) *Panel {
	return &Panel{canExpand: Eligible(description, highlights)}
}

// Eligible reports whether a toggle should be offered: a long description
// or a non-empty highlights list.
func Eligible(description string, highlights []string) bool {
	return TextLength(description) > DescriptionThreshold || len(highlights) > 0
}

// TextLength measures s in UTF-16 code units, the unit browsers use for
// string length.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// CanExpand reports whether the toggle control is offered.
func (p *Panel) CanExpand() bool { return p.canExpand }

// Expanded reports whether the full view is shown.
func (p *Panel) Expanded() bool { return p.expanded }

// Toggle flips the view. Panels without a toggle stay collapsed.
func (p *Panel) Toggle() {
	if !p.canExpand {
		return
	}
	p.expanded = !p.expanded
}

// Reset recomputes eligibility for new text. An expanded panel stays
// expanded only while it is still eligible.
func (p *Panel) Reset(description string, highlights []string) {
	p.canExpand = Eligible(description, highlights)
	if !p.canExpand {
		p.expanded = false
	}
}

// ShowHighlights reports whether the highlights list is rendered.
func (p *Panel) ShowHighlights() bool { return p.expanded }

// ShowFade reports whether the truncation fade is rendered.
func (p *Panel) ShowFade() bool { return !p.expanded }
