// Package deepgram implements the texttospeech service contract over the
// Deepgram speak websocket.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/koscakluka/voicepipe/core/audio"
	"github.com/koscakluka/voicepipe/core/texttospeech"
)

type deepgramVoice string

const (
	VoiceAsteria deepgramVoice = "aura-2-asteria-en"
	VoiceThalia  deepgramVoice = "aura-2-thalia-en"
	VoiceOrion   deepgramVoice = "aura-2-orion-en"
	VoiceArcas   deepgramVoice = "aura-2-arcas-en"
)

var availableVoices = []deepgramVoice{VoiceAsteria, VoiceThalia, VoiceOrion, VoiceArcas}

type SynthesisClient struct {
	voice deepgramVoice

	connMu     sync.Mutex
	activeConn *websocket.Conn

	synthesizing atomic.Bool
}

func NewSynthesisClient(voice deepgramVoice) *SynthesisClient {
	if voice == "" {
		voice = VoiceAsteria
	}
	return &SynthesisClient{voice: voice}
}

// Synthesize collects the streamed chunks into one buffer.
func (c *SynthesisClient) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	var buffer bytes.Buffer
	if err := c.SynthesizeStream(ctx, text, func(audio []byte) {
		buffer.Write(audio)
	}, opts...); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// SynthesizeStream opens a speak websocket for the text, forwards binary
// frames to onChunk and returns once the service flushes the final audio.
func (c *SynthesisClient) SynthesizeStream(ctx context.Context, text string, onChunk func(audio []byte), opts ...texttospeech.SynthesisOption) error {
	options := &texttospeech.SynthesisOptions{
		Voice:        string(c.voice),
		EncodingInfo: audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := connectWebsocket(options.Voice, options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	c.connMu.Lock()
	c.activeConn = conn
	c.connMu.Unlock()
	c.synthesizing.Store(true)

	defer func() {
		c.synthesizing.Store(false)
		c.connMu.Lock()
		if c.activeConn == conn {
			c.activeConn = nil
		}
		c.connMu.Unlock()
		conn.Close()
	}()

	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: "Speak", Text: text}); err != nil {
		return fmt.Errorf("failed to send text to deepgram: %w", err)
	}
	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: "Flush"}); err != nil {
		return fmt.Errorf("failed to flush deepgram buffer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			onChunk(msg)
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				log.Printf("Failed to unmarshal deepgram message: %v", err)
				continue
			}
			if parsedMsg.Type == "Flushed" {
				return nil
			}
		}
	}
}

// Stop closes the active connection; the in-flight stream call returns with
// a read error and no further chunks are delivered.
func (c *SynthesisClient) Stop() {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.activeConn != nil {
		_ = c.activeConn.Close()
		c.activeConn = nil
	}
	c.synthesizing.Store(false)
}

func (c *SynthesisClient) AvailableVoices() []string {
	voices := make([]string, len(availableVoices))
	for i, voice := range availableVoices {
		voices[i] = string(voice)
	}
	return voices
}

func (c *SynthesisClient) IsSynthesizing() bool {
	return c.synthesizing.Load()
}

func connectWebsocket(voice string, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", voice)
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}
