package tts

import "context"

type Provider interface {
	// Synthesize renders text as MP3 audio.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
	Close() error
}
