// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/skills"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for the CLI
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// writeSkills writes up to maxItemsToShow skills as bullets.
func writeSkills(sb *strings.Builder, set skills.SkillSet) {
	items := set.Items()
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// describe renders an extraction diagnostic as "classified" or "fallback (reason)".
func describe(d extraction.Diagnostic) string {
	if d.Reason == "" {
		return d.Source
	}
	return fmt.Sprintf("%s (%s)", d.Source, d.Reason)
}

// PrintOutcome outputs the skills found by one extraction and how they were found.
func (p *Printer) PrintOutcome(title string, outcome extraction.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", describe(extraction.Describe(outcome))))
	sb.WriteString(fmt.Sprintf("Skills:   %d\n\n", outcome.Skills().Len()))
	writeSkills(&sb, outcome.Skills())

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the score, both skill sets, and the feedback paragraphs.
func (p *Printer) PrintAnalysis(resp *analysis.Response) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:    %.2f%%\n", resp.Score*100))
	sb.WriteString(fmt.Sprintf("ID:       %s\n", resp.AnalysisID))
	if resp.Extraction != nil {
		sb.WriteString(fmt.Sprintf("Resume:   %s\n", describe(resp.Extraction.Resume)))
		sb.WriteString(fmt.Sprintf("Job:      %s\n", describe(resp.Extraction.Job)))
	}
	sb.WriteString("\nResume skills:\n")
	writeSkills(&sb, resp.ResumeSkills)
	sb.WriteString("\nJob skills:\n")
	writeSkills(&sb, resp.JobSkills)

	p.printBox("ANALYSIS RESULT", strings.TrimSuffix(sb.String(), "\n"))

	sb.Reset()
	sections := []struct {
		label string
		text  string
	}{
		{"Strengths", resp.Strengths},
		{"Weaknesses", resp.Weaknesses},
		{"Recommendations", resp.Recommendations},
	}
	for i, section := range sections {
		sb.WriteString(section.label + ":\n")
		for _, line := range wrap(section.text, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}
