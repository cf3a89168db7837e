// Package deepgram implements the speechtotext service contract over the
// Deepgram live-listen websocket.
package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"github.com/koscakluka/voicepipe/core/audio"
	"github.com/koscakluka/voicepipe/core/speechtotext"
	"github.com/koscakluka/voicepipe/internal/utils"
)

const (
	defaultModel = "nova-3"

	// audioChunkSize keeps individual websocket frames small enough for the
	// ingestion endpoint.
	audioChunkSize = 8192
)

type TranscriptionClient struct{}

func NewTranscriptionClient() *TranscriptionClient {
	return &TranscriptionClient{}
}

// Transcribe sends the full buffer over a fresh live-listen connection and
// assembles the finalized segments into one result. The connection is closed
// once the service acknowledges the end of the stream.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audioBytes []byte, opts ...speechtotext.TranscriptionOption) (*speechtotext.Result, error) {
	options := &speechtotext.TranscriptionOptions{
		Model:        defaultModel,
		EncodingInfo: audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := connectWebsocket(connectionOptions{
		sampleRate: options.EncodingInfo.SampleRate,
		encoding:   options.EncodingInfo.Format.Name(),
		model:      options.Model,
		language:   options.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}
	defer conn.Close()

	collector := newResultCollector()
	done := make(chan error, 1)
	go func() { done <- collector.readMessages(conn) }()

	for start := 0; start < len(audioBytes); start += audioChunkSize {
		end := min(start+audioChunkSize, len(audioBytes))
		if err := conn.WriteMessage(websocket.BinaryMessage, audioBytes[start:end]); err != nil {
			return nil, fmt.Errorf("failed to send audio to deepgram: %w", err)
		}
	}
	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return nil, fmt.Errorf("failed to close deepgram stream: %w", err)
	}

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("failed to read transcription: %w", err)
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return collector.result(options.Language), nil
}

type connectionOptions struct {
	sampleRate int
	encoding   string
	model      string
	language   string
}

func connectWebsocket(options connectionOptions) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	listenUrl, _ := url.Parse("wss://api.deepgram.com/v1/listen")
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", options.encoding)
	queryParams.Set("sample_rate", strconv.Itoa(options.sampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", options.model)
	if options.language != "" {
		queryParams.Set("language", options.language)
	}
	queryParams.Set("smart_format", "true")

	listenUrl.RawQuery = queryParams.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(listenUrl.String(),
		http.Header{"Authorization": {"Token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

type resultCollector struct {
	mu         sync.Mutex
	segments   []string
	words      []speechtotext.WordTimestamp
	confidence *float64
}

func newResultCollector() *resultCollector {
	return &resultCollector{}
}

func (c *resultCollector) readMessages(conn *websocket.Conn) error {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}
		if msgType == websocket.BinaryMessage {
			continue
		}

		c.processMessage(msg)
	}
}

func (c *resultCollector) processMessage(msg []byte) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		log.Println("Failed to unmarshal deepgram message", "error", err)
		return
	}

	if api.TypeResponse(parsedMsg.Type) != api.TypeMessageResponse {
		return
	}

	var msgResp api.MessageResponse
	if err := json.Unmarshal(msg, &msgResp); err != nil {
		log.Println("Failed to unmarshal deepgram message", err)
		return
	}
	if !msgResp.IsFinal || len(msgResp.Channel.Alternatives) == 0 {
		return
	}

	alternative := msgResp.Channel.Alternatives[0]
	transcript := strings.TrimSpace(alternative.Transcript)
	if len(transcript) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.segments = append(c.segments, transcript)
	if c.confidence == nil {
		c.confidence = utils.Ptr(alternative.Confidence)
	}
	for _, word := range alternative.Words {
		c.words = append(c.words, speechtotext.WordTimestamp{
			Word:  word.Word,
			Start: word.Start,
			End:   word.End,
		})
	}
}

func (c *resultCollector) result(language string) *speechtotext.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &speechtotext.Result{
		Text:       strings.Join(c.segments, " "),
		Confidence: c.confidence,
		Words:      c.words,
		Language:   language,
	}
}
