package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/koscakluka/voicepipe/core/llms"
	"go.opentelemetry.io/otel/attribute"
)

type completionResponseBody struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate performs one blocking chat completion and returns the response
// text.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...llms.GenerateOption) (string, error) {
	options := c.resolveOptions(opts)

	body, err := c.complete(ctx, requestBody{
		Model:       c.model,
		Messages:    toMessages(options.Instructions, prompt),
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	var responseBody completionResponseBody
	if err := json.Unmarshal(body, &responseBody); err != nil {
		return "", fmt.Errorf("error unmarshalling JSON: %w", err)
	}
	if len(responseBody.Choices) == 0 {
		logger.WarnContext(ctx, "no choices returned for completion")
		return "", nil
	}

	return responseBody.Choices[0].Message.Content, nil
}

func (c *Client) complete(ctx context.Context, reqBody requestBody) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "generate llm completion")
	defer span.End()
	span.SetAttributes(attribute.String("request.model", reqBody.Model))

	requestBodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := newHTTPClient().Do(req)
	if err != nil {
		err = fmt.Errorf("error sending request: %w", err)
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		span.SetAttributes(attribute.String("response.error", string(body)))
		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		return nil, err
	}

	return body, nil
}
