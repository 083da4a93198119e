package generator

import (
	"strings"

	"auto_research_doc_publisher/brief"
)

// Compose renders the brief into the single instruction sent to the model.
// Section order is fixed so composed prompts stay comparable across runs.
func Compose(b brief.Brief) string {
	var sb strings.Builder
	sb.WriteString("**Persona:**\n")
	sb.WriteString(b.Persona)
	sb.WriteString("\n\n**Primary Goals:**\n")
	writeList(&sb, b.Goals)
	sb.WriteString("\n**Detailed Instructions:**\n")
	writeList(&sb, b.Instructions)
	sb.WriteString("\n**Constraints:**\n")
	writeList(&sb, b.Constraints)
	sb.WriteString("\n**Output Format:**\n")
	sb.WriteString(b.OutputFormat)
	return sb.String()
}

func writeList(sb *strings.Builder, items []string) {
	for _, it := range items {
		sb.WriteString("- ")
		sb.WriteString(it)
		sb.WriteString("\n")
	}
}
