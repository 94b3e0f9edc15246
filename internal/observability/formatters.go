// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrehq/vidnotes/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEvidence outputs which sources contributed evidence and how much text
// each one carries.
func (p *Printer) PrintEvidence(bundle types.EvidenceBundle) {
	if len(bundle) == 0 {
		return
	}

	var sb strings.Builder
	for _, src := range types.AllSources {
		text, ok := bundle[src]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-12s %d chars, %d words\n", string(src)+":", len(text), len(strings.Fields(text))))
	}

	p.printBox("EVIDENCE BUNDLE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidates outputs the extracted name candidates with their mention
// counts and source tags.
func (p *Printer) PrintCandidates(candidates []types.NameCandidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("• %s\n", c.Text))
		tags := make([]string, 0, len(c.Sources))
		for _, src := range c.SourceTags() {
			tags = append(tags, fmt.Sprintf("%s×%d", src, c.Sources[src]))
		}
		sb.WriteString(fmt.Sprintf("  mentions: %d (%s)\n", c.MentionCount(), strings.Join(tags, ", ")))
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("NAME CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs per-candidate criteria outcomes and the verdict.
func (p *Printer) PrintValidation(results []types.ValidationResult) {
	if len(results) == 0 {
		return
	}

	accepted := 0
	var sb strings.Builder
	for _, r := range results {
		verdict := "rejected"
		if r.Accepted {
			verdict = "ACCEPTED"
			accepted++
		}
		criteria := make([]string, 0, len(r.CriteriaMet))
		for _, c := range r.CriteriaMet {
			criteria = append(criteria, string(c))
		}
		met := strings.Join(criteria, "+")
		if met == "" {
			met = "none"
		}
		sb.WriteString(fmt.Sprintf("%-24s %s (%s)\n", r.Candidate.Text, verdict, met))
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d accepted", accepted, len(results)))

	p.printBox("ANTI-ERROR VALIDATION", sb.String())
}

// PrintCanonicalNames outputs the canonical participant list with bios and
// merge provenance.
func (p *Printer) PrintCanonicalNames(names []types.CanonicalName) {
	if len(names) == 0 {
		return
	}

	var sb strings.Builder
	for i, n := range names {
		sb.WriteString(fmt.Sprintf("• %s\n", n.Name))
		if n.Bio != "" {
			sb.WriteString(fmt.Sprintf("  bio: %s\n", n.Bio))
		}
		if len(n.MergedFrom) > 1 {
			variants := make([]string, 0, len(n.MergedFrom))
			for _, m := range n.MergedFrom {
				variants = append(variants, m.Text)
			}
			sb.WriteString(fmt.Sprintf("  merged: %s\n", strings.Join(variants, ", ")))
		}
		if i < len(names)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CANONICAL NAMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintContent outputs a compact view of the synthesized content bundle.
func (p *Printer) PrintContent(content *types.ContentBundle) {
	if content == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Summary:  %d words\n", len(strings.Fields(content.Summary))))
	sb.WriteString(fmt.Sprintf("Chapters: %d\n", len(content.Chapters)))

	count := min(len(content.Chapters), maxItemsToShow)
	for i := 0; i < count; i++ {
		ch := content.Chapters[i]
		sb.WriteString(fmt.Sprintf("  %s %s\n", ch.Timestamp(), ch.Title))
	}
	if len(content.Chapters) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(content.Chapters)-maxItemsToShow))
	}

	keywords := strings.Join(content.Keywords, ", ")
	if len(keywords) > 40 {
		keywords = keywords[:37] + "..."
	}
	sb.WriteString(fmt.Sprintf("Keywords: %s", keywords))

	p.printBox("CONTENT BUNDLE", sb.String())
}
