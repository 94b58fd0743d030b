package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"
)

// OpenAISpeech implements Transcriber and Synthesizer over the OpenAI
// audio endpoints: Whisper for speech-to-text, tts-1 for replies.
type OpenAISpeech struct {
	client openai.Client
	voice  openai.AudioSpeechNewParamsVoice
}

// NewOpenAISpeech creates a speech client. Voice defaults to alloy.
func NewOpenAISpeech(apiKey string, voice string) *OpenAISpeech {
	v := openai.AudioSpeechNewParamsVoiceAlloy
	if voice != "" {
		v = openai.AudioSpeechNewParamsVoice(voice)
	}
	return &OpenAISpeech{
		client: openai.NewClient(ooption.WithAPIKey(apiKey)),
		voice:  v,
	}
}

// Transcribe sends WAV audio to Whisper and returns the transcript.
func (s *OpenAISpeech) Transcribe(ctx context.Context, wav io.Reader) (string, error) {
	resp, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  wav,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return resp.Text, nil
}

// Synthesize converts text to spoken audio bytes.
func (s *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModelTTS1,
		Voice: s.voice,
		Input: CleanForSpeech(text),
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer resp.Body.Close()
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	return audio, nil
}
