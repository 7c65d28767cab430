package content

import (
	"fmt"
	"strings"
)

// Markdown lays the memo out as a markdown document for the terminal
// renderer.
func (m Memo) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(m.Title))
	var meta []string
	if m.Generated != "" {
		meta = append(meta, "Generated on "+m.Generated)
	}
	if m.ID != "" {
		meta = append(meta, "ID: #"+m.ID)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " • "))
	}
	if m.Confidence != "" {
		fmt.Fprintf(&b, "> Confidence: **%s**\n\n", m.Confidence)
	}
	if bluf := strings.TrimSpace(m.BLUF); bluf != "" {
		b.WriteString("## Bottom Line Up Front (BLUF)\n\n")
		b.WriteString(bluf)
		b.WriteString("\n\n")
	}
	if len(m.Evidence) > 0 {
		b.WriteString("## Supporting Evidence\n\n")
		for i, item := range m.Evidence {
			fmt.Fprintf(&b, "%d. **%s** — %s\n", i+1, item.Title, item.Detail)
		}
		b.WriteString("\n")
	}
	if len(m.Risks) > 0 {
		b.WriteString("## Trade-offs & Risks\n\n")
		for _, item := range m.Risks {
			line := fmt.Sprintf("- ⚠ **%s**: %s", item.Title, item.Detail)
			if item.Source != "" {
				line += fmt.Sprintf(" *(Source: %s)*", item.Source)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
