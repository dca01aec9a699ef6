package content

import (
	"fmt"
	"strings"
)

var sectionHeaders = []struct {
	Type   KnowledgeType
	Header string
}{
	{TypeFoundational, "## Foundational Concepts"},
	{TypePractical, "## Practical Applications"},
	{TypeStrategic, "## Strategic Insights"},
}

// AssembleMarkdown renders the session document. Assembly is done in
// code, not by the model: the wrapper's title and overview open the
// document, knowledge points are grouped by type into the three fixed
// sections, each point's index-aligned draft is appended under a "###"
// heading, and the wrapper's summary closes it.
func AssembleMarkdown(structure DocumentStructure, points []KnowledgePoint, drafts []KnowledgeDraft) string {
	var md strings.Builder

	fmt.Fprintf(&md, "# %s", structure.Title)
	fmt.Fprintf(&md, "\n\n%s", structure.Overview)

	for _, section := range sectionHeaders {
		md.WriteString("\n\n" + section.Header + "\n")
		for i, point := range points {
			if point.Type != section.Type || i >= len(drafts) {
				continue
			}
			fmt.Fprintf(&md, "\n\n### %s\n\n%s\n", drafts[i].Title, drafts[i].Content)
		}
	}

	fmt.Fprintf(&md, "\n\n## Summary\n\n%s", structure.Summary)
	return md.String()
}
