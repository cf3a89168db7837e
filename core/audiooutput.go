package pipeline

import (
	"reflect"

	"github.com/koscakluka/voicepipe/core/audio"
)

// AudioOutputClient is the playback surface a device client provides.
type AudioOutputClient interface {
	SendAudio(audio []byte) error
	ClearBuffer()
	EncodingInfo() audio.EncodingInfo
}

// AudioOutput normalizes playback behind one facade so pipeline code can
// forward synthesized audio without caring whether a device is configured.
//
// NOTE: methods do best-effort forwarding and ignore client return errors
// because playback is a non-fatal side effect of a turn.
type AudioOutput struct {
	// base stores the configured output client.
	base AudioOutputClient
}

func NewAudioOutput(client AudioOutputClient) *AudioOutput {
	output := AudioOutput{}
	output.Set(client)
	return &output
}

// Set replaces the configured output client. Nil and typed-nil clients are
// treated as unconfigured.
func (a *AudioOutput) Set(client AudioOutputClient) {
	if a == nil {
		return
	}

	a.base = nil
	if isNilAudioOutputClient(client) {
		return
	}
	a.base = client
}

func (a *AudioOutput) IsConfigured() bool {
	return a != nil && a.base != nil
}

// SendAudio forwards a chunk to the configured output client. Without one,
// the chunk is dropped.
func (a *AudioOutput) SendAudio(audio []byte) {
	if a == nil || a.base == nil {
		return
	}
	_ = a.base.SendAudio(audio)
}

// Clear flushes buffered playback on the configured client.
func (a *AudioOutput) Clear() {
	if a == nil || a.base == nil {
		return
	}
	a.base.ClearBuffer()
}

// EncodingInfo returns the active output encoding metadata, or the project
// default when no client is configured.
func (a *AudioOutput) EncodingInfo() audio.EncodingInfo {
	if a == nil || a.base == nil {
		return audio.GetDefaultEncodingInfo()
	}
	return a.base.EncodingInfo()
}

// isNilAudioOutputClient detects nil and typed-nil interface values so Set
// does not store unusable interface wrappers as configured clients.
func isNilAudioOutputClient(client AudioOutputClient) bool {
	if client == nil {
		return true
	}

	v := reflect.ValueOf(client)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
