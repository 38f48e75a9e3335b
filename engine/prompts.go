package engine

import "strings"

const answerSystemPrompt = `You are a careful assistant answering questions over a curated knowledge base.

Answer using ONLY the information in the provided context sections. If the context does not contain enough
information to answer, say so plainly instead of guessing. Keep the answer concise and cite entity or
document names from the context where relevant.`

// buildAnswerPrompt assembles the user prompt from the retrieved context
// sections and the question.
func buildAnswerPrompt(query string, sections []string) string {
	var b strings.Builder

	if len(sections) == 0 {
		b.WriteString("Context: (no relevant context was found in the knowledge base)\n\n")
	} else {
		b.WriteString("Context:\n\n")
		for _, section := range sections {
			b.WriteString(section)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("Question: ")
	b.WriteString(query)
	return b.String()
}
