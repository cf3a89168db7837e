package llms

type GenerateOptions struct {
	// Instructions is the system prompt prepended to the conversation.
	Instructions string
	// Temperature overrides response randomness; nil leaves the service
	// default.
	Temperature *float64
	// MaxTokens caps the response length; 0 leaves the service default.
	MaxTokens int
}

type GenerateOption func(*GenerateOptions)

func WithInstructions(instructions string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Instructions = instructions
	}
}

func WithTemperature(temperature float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = &temperature
	}
}

func WithMaxTokens(maxTokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = maxTokens
	}
}
