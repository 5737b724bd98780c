package prompt

import (
	"fmt"
	"strings"

	"rag-symptom-be/pkg/knowledge"
	"rag-symptom-be/pkg/rag"
)

// NoRemedyPlaceholder replaces an empty remedy list so every section is present
const NoRemedyPlaceholder = "no remedy available"

// PrescriptionBuilder renders a finalized condition into the generation prompt.
// Section order is fixed: question, condition, symptoms, ayurvedic, english, task.
type PrescriptionBuilder struct {
	condition    knowledge.Condition
	userQuestion string
}

// NewPrescriptionBuilder creates a builder; userQuestion may be empty
func NewPrescriptionBuilder(condition knowledge.Condition, userQuestion string) *PrescriptionBuilder {
	return &PrescriptionBuilder{
		condition:    condition,
		userQuestion: strings.TrimSpace(userQuestion),
	}
}

// Compose is shorthand for NewPrescriptionBuilder(...).Build()
func Compose(condition knowledge.Condition, userQuestion string) string {
	return NewPrescriptionBuilder(condition, userQuestion).Build()
}

func (b *PrescriptionBuilder) Build() string {
	var prompt strings.Builder

	b.writeUserQuestion(&prompt)
	b.writeCondition(&prompt)
	b.writeRemedies(&prompt, "Ayurvedic medicines", b.condition.AyurvedicRemedies)
	b.writeRemedies(&prompt, "English medicines", b.condition.EnglishRemedies)
	b.writeTask(&prompt)

	return prompt.String()
}

func (b *PrescriptionBuilder) writeUserQuestion(prompt *strings.Builder) {
	if b.userQuestion == "" {
		return
	}
	prompt.WriteString("User question: ")
	prompt.WriteString(b.userQuestion)
	prompt.WriteString("\n")
}

func (b *PrescriptionBuilder) writeCondition(prompt *strings.Builder) {
	prompt.WriteString("Top condition candidate: ")
	prompt.WriteString(b.condition.Name)
	prompt.WriteString("\n")

	prompt.WriteString("Symptoms: ")
	if len(b.condition.Symptoms) == 0 {
		prompt.WriteString("none listed")
	} else {
		prompt.WriteString(strings.Join(b.condition.Symptoms, ", "))
	}
	prompt.WriteString("\n\n")
}

func (b *PrescriptionBuilder) writeRemedies(prompt *strings.Builder, title string, remedies []knowledge.Remedy) {
	prompt.WriteString(title)
	prompt.WriteString(":\n")

	if len(remedies) == 0 {
		prompt.WriteString("- ")
		prompt.WriteString(NoRemedyPlaceholder)
		prompt.WriteString("\n\n")
		return
	}

	for _, r := range remedies {
		prompt.WriteString(RemedyLine(r))
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n")
}

func (b *PrescriptionBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("Provide a short educational summary of the condition and suggest the Ayurvedic and English options above ")
	prompt.WriteString("(include dosage & quantity). Also include this disclaimer: ")
	prompt.WriteString(rag.Disclaimer)
}

// RemedyLine renders one remedy as "- medicine: dosage (Qty: quantity)"
func RemedyLine(r knowledge.Remedy) string {
	return fmt.Sprintf("- %s: %s (Qty: %s)", r.Medicine, r.Dosage, r.Quantity)
}
