// Package groq implements the llms service contract over the Groq
// OpenAI-compatible chat completions API.
package groq

import (
	"net/http"
	"os"

	"github.com/jinzhu/copier"
	"github.com/koscakluka/voicepipe/core/llms"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/koscakluka/voicepipe/core/llms/groq"

var (
	tracer = otel.Tracer(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

const (
	url = "https://api.groq.com/openai/v1/chat/completions"

	endMessage  = "[DONE]"
	chunkPrefix = "data:"

	defaultModel = "llama-3.3-70b-versatile"
)

type Client struct {
	apiKey string
	model  string

	defaults llms.GenerateOptions
}

type ClientOption func(*Client)

func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithDefaultGenerateOptions sets options applied to every call before
// per-call options.
func WithDefaultGenerateOptions(opts ...llms.GenerateOption) ClientOption {
	return func(c *Client) {
		for _, opt := range opts {
			opt(&c.defaults)
		}
	}
}

// NewClient creates a Groq client. The API key is taken from the
// GROQ_API_KEY environment variable; a missing key leaves the client not
// ready rather than failing construction.
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		apiKey: os.Getenv("GROQ_API_KEY"),
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) IsReady() bool {
	return c != nil && c.apiKey != ""
}

// resolveOptions deep-copies the client defaults and layers per-call
// options on top.
func (c *Client) resolveOptions(opts []llms.GenerateOption) llms.GenerateOptions {
	options := llms.GenerateOptions{}
	if err := copier.Copy(&options, &c.defaults); err != nil {
		options = c.defaults
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func newHTTPClient() *http.Client {
	return &http.Client{Transport: newTransport()}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	messageRoleSystem = "system"
	messageRoleUser   = "user"
)

func toMessages(instructions string, prompt string) []message {
	messages := []message{}
	if instructions != "" {
		messages = append(messages, message{Role: messageRoleSystem, Content: instructions})
	}
	return append(messages, message{Role: messageRoleUser, Content: prompt})
}

type requestBody struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Stream         bool            `json:"stream"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *jsonSchemaFormat `json:"json_schema,omitempty"`
}

type jsonSchemaFormat struct {
	Name   string `json:"name"`
	Schema any    `json:"schema"`
}
