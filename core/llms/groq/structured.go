package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/koscakluka/voicepipe/core/llms"
)

// GenerateStructured performs one blocking completion constrained to the
// JSON schema reflected from result, and unmarshals the response into it.
// result must be a non-nil pointer to a struct.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, result any, opts ...llms.GenerateOption) error {
	resultValue := reflect.ValueOf(result)
	if resultValue.Kind() != reflect.Pointer || resultValue.IsNil() {
		return fmt.Errorf("result must be a non-nil pointer, got %T", result)
	}

	options := c.resolveOptions(opts)

	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(result)

	body, err := c.complete(ctx, requestBody{
		Model:       c.model,
		Messages:    toMessages(options.Instructions, prompt),
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchemaFormat{
				Name:   resultValue.Elem().Type().Name(),
				Schema: schema,
			},
		},
	})
	if err != nil {
		return err
	}

	var responseBody completionResponseBody
	if err := json.Unmarshal(body, &responseBody); err != nil {
		return fmt.Errorf("error unmarshalling JSON: %w", err)
	}
	if len(responseBody.Choices) == 0 {
		return fmt.Errorf("no choices returned for structured completion")
	}

	if err := json.Unmarshal([]byte(responseBody.Choices[0].Message.Content), result); err != nil {
		return fmt.Errorf("error unmarshalling structured response: %w", err)
	}

	return nil
}
