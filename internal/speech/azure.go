package speech

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// Environment variables holding the Azure speech resource credentials.
// Read at synthesis time, not at startup, so a run that never reaches
// synthesis never needs them.
const (
	EnvSpeechKey    = "SPEECH_KEY"
	EnvSpeechRegion = "SPEECH_REGION"
)

// AzureOptions configures the Azure Speech engine.
type AzureOptions struct {
	// Voice is a neural voice name, e.g. en-GB-SoniaNeural.
	Voice string
	// SampleRate selects the riff PCM output format (16000, 24000 or
	// 48000 Hz).
	SampleRate int
	// Endpoint overrides the regional endpoint derived from
	// SPEECH_REGION. Tests point this at a local server.
	Endpoint string
}

type azureEngine struct {
	opts   AzureOptions
	client *http.Client
	logger logger.Logger
}

// NewAzure creates an Engine backed by the Azure AI Speech REST API.
func NewAzure(opts AzureOptions, log logger.Logger) Engine {
	return &azureEngine{
		opts:   opts,
		client: &http.Client{Timeout: 5 * time.Minute},
		logger: log,
	}
}

func (e *azureEngine) SynthesizeToFile(ctx context.Context, text, path string) error {
	key := os.Getenv(EnvSpeechKey)
	if key == "" {
		return &CancellationError{
			Reason: "Error",
			Detail: fmt.Sprintf("environment variable %s is not set", EnvSpeechKey),
		}
	}

	endpoint := e.opts.Endpoint
	if endpoint == "" {
		region := os.Getenv(EnvSpeechRegion)
		if region == "" {
			return &CancellationError{
				Reason: "Error",
				Detail: fmt.Sprintf("environment variable %s is not set", EnvSpeechRegion),
			}
		}
		endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region)
	}

	body, err := ssml(e.opts.Voice, text)
	if err != nil {
		return fmt.Errorf("build ssml: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat(e.opts.SampleRate))
	req.Header.Set("User-Agent", "slidecast")

	resp, err := e.client.Do(req)
	if err != nil {
		return &CancellationError{Reason: "Error", Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &CancellationError{
			Reason: "Error",
			Detail: fmt.Sprintf("service returned %s: %s", resp.Status, strings.TrimSpace(string(detail))),
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}

	return nil
}

// ssml wraps narration text in the minimal speak/voice envelope the
// endpoint expects. The voice name carries the locale, so xml:lang is
// derived from it.
func ssml(voice, text string) ([]byte, error) {
	lang := "en-US"
	if parts := strings.SplitN(voice, "-", 3); len(parts) >= 2 {
		lang = parts[0] + "-" + parts[1]
	}

	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<speak version='1.0' xml:lang='%s'><voice name='%s'>%s</voice></speak>`,
		lang, voice, escaped.String())
	return b.Bytes(), nil
}

func outputFormat(sampleRate int) string {
	switch sampleRate {
	case 16000:
		return "riff-16khz-16bit-mono-pcm"
	case 48000:
		return "riff-48khz-16bit-mono-pcm"
	default:
		return "riff-24khz-16bit-mono-pcm"
	}
}
