package events

const (
	// KindLLMThinking identifies the start of response generation.
	KindLLMThinking Kind = "llm.thinking"
	// KindLLMStreamStarted identifies the arrival of the first streamed token.
	KindLLMStreamStarted Kind = "llm.stream_started"
	// KindLLMStreamToken identifies one streamed response token.
	KindLLMStreamToken Kind = "llm.stream_token"
	// KindLLMFinalResponse identifies the terminal response text.
	KindLLMFinalResponse Kind = "llm.final_response"
)

// LLMThinking marks that generation was requested; always the first llm
// event of a turn.
type LLMThinking struct{ Base }

// NewLLMThinking creates a thinking event.
func NewLLMThinking() LLMThinking {
	return LLMThinking{Base: NewBase(KindLLMThinking, StageLLM)}
}

// LLMStreamStarted marks the arrival of the first streamed token. It always
// precedes any LLMStreamToken and is never emitted on the batch path.
type LLMStreamStarted struct{ Base }

// NewLLMStreamStarted creates a stream started event.
func NewLLMStreamStarted() LLMStreamStarted {
	return LLMStreamStarted{Base: NewBase(KindLLMStreamStarted, StageLLM)}
}

// LLMStreamToken carries one streamed response token.
type LLMStreamToken struct {
	Base
	Token string
}

// NewLLMStreamToken creates a stream token event.
func NewLLMStreamToken(token string) LLMStreamToken {
	return LLMStreamToken{Base: NewBase(KindLLMStreamToken, StageLLM), Token: token}
}

// LLMFinalResponse carries the terminal response text. Empty text means no
// answer was produced, not a protocol violation.
type LLMFinalResponse struct {
	Base
	Response string
}

// NewLLMFinalResponse creates a final response event.
func NewLLMFinalResponse(response string) LLMFinalResponse {
	return LLMFinalResponse{Base: NewBase(KindLLMFinalResponse, StageLLM), Response: response}
}
