package agent

import "strings"

const instructionPreamble = "You are an expert at writing SQL code. Based on the user query and the following examples, " +
	"Write the SQL code with no extra explanation. Just the code."

// assembles the generation instruction: preamble, question, retrieved examples, output marker
func BuildInstruction(question, examplesBlock string) string {
	var builder strings.Builder

	builder.WriteString(instructionPreamble)
	builder.WriteString(" ### input: ")
	builder.WriteString(question)
	builder.WriteString("\n**Examples:**\n")
	builder.WriteString(examplesBlock)
	builder.WriteString("\n### Output:")

	return builder.String()
}
