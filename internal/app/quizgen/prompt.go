// internal/app/quizgen/prompt.go
package quizgen

import (
	"fmt"
	"strings"
)

// buildPrompt renders the generation instructions for one quiz. The model
// must answer with bare JSON matching the schema in schema.go.
func buildPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("You are an expert mathematics teacher in Turkey. Generate a 5-question multiple-choice quiz.\n\n")
	b.WriteString("Instructions:\n")
	b.WriteString("1. The quiz must be in TURKISH.\n")
	fmt.Fprintf(&b, "2. The topic of the quiz is: %s.\n", in.Topic)
	fmt.Fprintf(&b, "3. The target grade level is: %s.\n", in.Grade)
	b.WriteString("4. Create 5 multiple-choice questions.\n")
	b.WriteString("5. Each question must have 4 options (A, B, C, D).\n")
	b.WriteString("6. The questions should be appropriate for the specified grade level's curriculum in Turkey.\n")
	b.WriteString("7. Ensure there is only one correct answer for each question.\n")
	b.WriteString("8. Vary the question types (e.g., calculations, word problems, definitions).\n")
	if in.Prompt != "" {
		fmt.Fprintf(&b, "9. Follow these additional instructions: %s\n", in.Prompt)
	}
	b.WriteString("\nReturn ONLY a JSON object of the form ")
	b.WriteString(`{"questions":[{"questionText":"...","options":["...","...","...","..."],"correctAnswer":"A"}]}`)
	b.WriteString(" with exactly 5 questions. Do not include any extra text or explanations.")
	return b.String()
}
