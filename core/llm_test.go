package pipeline

import (
	"context"
	"testing"

	"github.com/koscakluka/voicepipe/core/events"
	"github.com/koscakluka/voicepipe/core/llms"
)

type fakeLLM struct {
	tokens   []string
	response string
	ready    bool
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llms.GenerateOption) (string, error) {
	return f.response, nil
}

func (f *fakeLLM) GenerateStream(ctx context.Context, prompt string, opts ...llms.GenerateOption) llms.Stream {
	return &fakeStream{tokens: f.tokens}
}

func (f *fakeLLM) IsReady() bool { return f.ready }

type fakeStream struct {
	tokens []string
}

func (f *fakeStream) Tokens(ctx context.Context) func(func(string, error) bool) {
	return func(yield func(string, error) bool) {
		for _, token := range f.tokens {
			if !yield(token, nil) {
				return
			}
		}
	}
}

func TestLLMHandlerBatchFallbackWithoutService(t *testing.T) {
	var kinds []events.Kind
	var finalResponse string
	handler := NewLLMHandler(func(event events.Event) {
		kinds = append(kinds, event.Kind())
		if final, ok := event.(events.LLMFinalResponse); ok {
			finalResponse = final.Response
		}
	})

	response, err := handler.ProcessWithLLM(context.Background(), "hello", nil, nil)
	if err != nil {
		t.Fatalf("expected degraded response, got error %v", err)
	}
	if response != "" {
		t.Errorf("expected empty response, got %q", response)
	}

	expected := []events.Kind{events.KindLLMThinking, events.KindLLMFinalResponse}
	if len(kinds) != len(expected) {
		t.Fatalf("expected events %v, got %v", expected, kinds)
	}
	for i, kind := range expected {
		if kinds[i] != kind {
			t.Errorf("expected event %d to be %q, got %q", i, kind, kinds[i])
		}
	}
	if finalResponse != "" {
		t.Errorf("expected empty final response event, got %q", finalResponse)
	}
}

func TestLLMHandlerBatchFallbackWithNotReadyService(t *testing.T) {
	var kinds []events.Kind
	handler := NewLLMHandler(func(event events.Event) { kinds = append(kinds, event.Kind()) })

	response, err := handler.ProcessWithLLM(context.Background(), "hello", &fakeLLM{ready: false}, nil)
	if err != nil {
		t.Fatalf("expected degraded response, got error %v", err)
	}
	if response != "" {
		t.Errorf("expected empty response, got %q", response)
	}
	if len(kinds) != 2 || kinds[1] != events.KindLLMFinalResponse {
		t.Fatalf("expected thinking then final response, got %v", kinds)
	}
}

func TestLLMHandlerStreamingEventOrder(t *testing.T) {
	var kinds []events.Kind
	handler := NewLLMHandler(func(event events.Event) { kinds = append(kinds, event.Kind()) })

	service := &fakeLLM{ready: true, tokens: []string{"Hello", " there", "."}}
	response, err := handler.ProcessWithLLM(context.Background(), "hi", service, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response != "Hello there." {
		t.Errorf("expected response %q, got %q", "Hello there.", response)
	}

	expected := []events.Kind{
		events.KindLLMThinking,
		events.KindLLMStreamStarted,
		events.KindLLMStreamToken,
		events.KindLLMStreamToken,
		events.KindLLMStreamToken,
		events.KindLLMFinalResponse,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("expected events %v, got %v", expected, kinds)
	}
	for i, kind := range expected {
		if kinds[i] != kind {
			t.Errorf("expected event %d to be %q, got %q", i, kind, kinds[i])
		}
	}
}

func TestLLMHandlerStreamingFeedsTTS(t *testing.T) {
	synth := &fakeSynthesizer{}
	tts := NewStreamingTTSHandler(synth, nil)
	// Leftovers from a previous turn must not leak into this one.
	tts.ProcessToken(context.Background(), "Stale buffer")

	handler := NewLLMHandler(func(events.Event) {})
	service := &fakeLLM{ready: true, tokens: []string{"First one.", " Second one"}}

	if _, err := handler.ProcessWithLLM(context.Background(), "hi", service, tts); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(synth.sentences) != 2 {
		t.Fatalf("expected 2 synthesized sentences, got %d: %v", len(synth.sentences), synth.sentences)
	}
	if synth.sentences[0] != "First one." {
		t.Errorf("expected first sentence %q, got %q", "First one.", synth.sentences[0])
	}
	if synth.sentences[1] != "Second one" {
		t.Errorf("expected flushed tail %q, got %q", "Second one", synth.sentences[1])
	}
}

func TestLLMHandlerBatchModeSynthesizesResponse(t *testing.T) {
	synth := &fakeSynthesizer{}
	tts := NewStreamingTTSHandler(synth, nil)

	handler := NewLLMHandler(func(events.Event) {}, WithoutStreaming())
	service := &fakeLLM{ready: true, response: "All done."}

	response, err := handler.ProcessWithLLM(context.Background(), "hi", service, tts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response != "All done." {
		t.Errorf("expected response %q, got %q", "All done.", response)
	}
	if len(synth.sentences) != 1 || synth.sentences[0] != "All done." {
		t.Fatalf("expected batch response synthesized once, got %v", synth.sentences)
	}
}
