package llm

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// defaultMaxTokens caps completions when the caller does not set a limit.
const defaultMaxTokens = 4096

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries the parameters for one completion call.
// JSONMode asks the provider to return a single JSON object, which the
// enhancer relies on for structural validation.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// CompletionResponse is the provider-neutral result of a completion call.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
