// Package answer turns retrieved context bundles into a grounded
// natural-language answer.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/htic/graphrag/internal/core/model"
	"github.com/htic/graphrag/internal/llm"
	"github.com/htic/graphrag/internal/logger"
)

// Apology is the degraded answer returned whenever retrieval or generation
// fails; raw errors never reach the client, only the machine-readable Err
// field does.
const Apology = "I apologize, but I encountered an error while processing your question. Please try again or rephrase your question."

const previewRunes = 300

// Result is the QA surface's answer envelope.
type Result struct {
	Answer       string `json:"answer"`
	EntitiesUsed int    `json:"entities_used"`
	Success      bool   `json:"success"`
	Err          string `json:"error,omitempty"`
}

// Failed wraps an error into the degraded apology result.
func Failed(err error, entitiesUsed int) Result {
	logger.Error("answer generation degraded", "error", err)
	return Result{
		Answer:       Apology,
		EntitiesUsed: entitiesUsed,
		Success:      false,
		Err:          err.Error(),
	}
}

// FormatContext renders bundles into the context block fed to the generation
// model. Relations with an unresolvable target are dropped here, at the
// formatting layer, not in the store.
func FormatContext(bundles []model.ContextBundle) string {
	if len(bundles) == 0 {
		return "No relevant context found in the knowledge graph."
	}

	var b strings.Builder
	for _, r := range bundles {
		fmt.Fprintf(&b, "\nEntity: %s\n", r.Entity)

		if len(r.Neighbors) > 0 {
			b.WriteString("  Relations:\n")
			for _, n := range r.Neighbors {
				if n.Target == "" {
					continue
				}
				fmt.Fprintf(&b, "    - (%s) -[%s]-> (%s) [source: %s]\n", n.Source, n.Relation, n.Target, n.Provenance)
			}
		}

		if len(r.Chunks) > 0 {
			b.WriteString("  Supporting Text:\n")
			for _, c := range r.Chunks {
				fmt.Fprintf(&b, "    - %s\n", preview(c.Text))
			}
		}
	}

	return b.String()
}

func preview(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= previewRunes {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:previewRunes])) + "..."
}

// Generate produces the grounded answer for a question. Any generation
// failure degrades to the apology result.
func Generate(ctx context.Context, client llm.Client, promptTemplate, question string, bundles []model.ContextBundle) Result {
	if promptTemplate == "" {
		promptTemplate = DefaultPrompt
	}

	prompt := fmt.Sprintf(promptTemplate, question, FormatContext(bundles))

	response, err := client.Generate(ctx, prompt)
	if err != nil {
		return Failed(fmt.Errorf("answer generation failed: %w", err), len(bundles))
	}

	return Result{
		Answer:       dedupeLines(strings.TrimSpace(response)),
		EntitiesUsed: len(bundles),
		Success:      true,
	}
}

// dedupeLines removes repeated lines, a common artifact of smaller local
// models on long grounded prompts.
func dedupeLines(answer string) string {
	lines := strings.Split(answer, "\n")
	seen := make(map[string]bool, len(lines))
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		cleaned = append(cleaned, line)
		seen[line] = true
	}

	return strings.Join(cleaned, "\n")
}
