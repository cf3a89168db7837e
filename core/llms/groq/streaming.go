package groq

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/koscakluka/voicepipe/core/llms"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

func newTransport() http.RoundTripper {
	return otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
			return operationName + " " + request.URL.Path
		}),
	)
}

// GenerateStream returns a one-shot SSE token stream for the prompt.
func (c *Client) GenerateStream(ctx context.Context, prompt string, opts ...llms.GenerateOption) llms.Stream {
	options := c.resolveOptions(opts)

	return &stream{
		apiKey:   c.apiKey,
		model:    c.model,
		options:  options,
		messages: toMessages(options.Instructions, prompt),
	}
}

type stream struct {
	apiKey   string
	model    string
	options  llms.GenerateOptions
	messages []message
}

type streamingResponseBody struct {
	Choices []struct {
		Delta struct {
			Content      string  `json:"content"`
			FinishReason *string `json:"finish_reason"`
		} `json:"delta"`
	} `json:"choices"`
}

func (s *stream) Tokens(ctx context.Context) func(func(string, error) bool) {
	requestStarted := time.Time{}

	return func(yield func(string, error) bool) {
		ctx, span := tracer.Start(ctx, "generate llm stream")
		defer span.End()
		span.SetAttributes(attribute.String("request.model", s.model))

		reqBody := requestBody{
			Model:       s.model,
			Messages:    s.messages,
			Stream:      true,
			Temperature: s.options.Temperature,
			MaxTokens:   s.options.MaxTokens,
		}

		requestBodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			err = fmt.Errorf("error marshalling JSON: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBodyBytes))
		if err != nil {
			err = fmt.Errorf("error creating HTTP request: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.apiKey)

		requestStarted = time.Now()
		resp, err := newHTTPClient().Do(req)
		if err != nil {
			err = fmt.Errorf("error sending request: %w", err)
			span.RecordError(err)
			yield("", err)
			return
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			if errorBody, readErr := io.ReadAll(resp.Body); readErr == nil {
				span.SetAttributes(attribute.String("response.error", string(errorBody)))
			}
			err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
			span.RecordError(err)
			yield("", err)
			return
		}

		firstToken := true
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			chunk := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), chunkPrefix))
			if len(chunk) == 0 {
				continue
			}
			if chunk == endMessage {
				break
			}

			var responseBody streamingResponseBody
			if err := json.Unmarshal([]byte(chunk), &responseBody); err != nil {
				err = fmt.Errorf("error unmarshalling JSON: %w", err)
				span.RecordError(err)
				if !yield("", err) {
					return
				}
				continue
			}

			if len(responseBody.Choices) == 0 {
				continue
			}
			content := responseBody.Choices[0].Delta.Content
			if content == "" {
				continue
			}

			if firstToken {
				span.SetAttributes(attribute.Float64("response.request_to_first_token_time",
					time.Since(requestStarted).Seconds()))
				span.AddEvent("received first token")
				firstToken = false
			}

			if !yield(content, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			err = fmt.Errorf("error reading stream: %w", err)
			span.RecordError(err)
			yield("", err)
		}
	}
}
