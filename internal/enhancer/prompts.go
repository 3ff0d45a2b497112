package enhancer

import (
	"fmt"

	"github.com/flowlens/flowlens/internal/llm"
)

const systemPrompt = `You are a technical writer improving the wording of a code flowchart.
You receive a JSON object with a "nodes" array. Rewrite only the "label",
"subtitle", "narrative" and "condition" fields so they read as clear plain
English for a non-programmer.

Rules:
- Return a JSON object with the same "nodes" array: same number of nodes,
  same "id" values in the same order, same "lineStart" and "lineEnd".
- Never add, remove or reorder nodes.
- Keep labels short (a few words). Conditions stay phrased as questions.
- Do not invent behavior that is not implied by the existing text.
- Respond with JSON only, no commentary.`

const concisePromptTemplate = `File: %s (language: %s)

Rewrite the node text below. Keep every narrative to one short sentence.

%s`

const detailedPromptTemplate = `File: %s (language: %s)

Rewrite the node text below. Narratives may run two or three sentences and
should explain what the step accomplishes for the reader.

%s`

func buildMessages(fileName, language string, mode Mode, nodesJSON string) []llm.Message {
	template := concisePromptTemplate
	if mode == ModeDetailed {
		template = detailedPromptTemplate
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(template, fileName, language, nodesJSON)},
	}
}
