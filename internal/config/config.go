package config

import "fmt"

type Config struct {
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Speech  SpeechConfig  `yaml:"speech"`
	Logging LoggingConfig `yaml:"logging"`
	Gemini  GeminiConfig  `yaml:"gemini"`
}

type FFmpegConfig struct {
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
	FrameRate  int    `yaml:"frame_rate"`
	Tune       string `yaml:"tune"`
}

type SpeechConfig struct {
	// SampleRate is the synthesized audio sample rate. The silence
	// padding is generated at the same rate so the concat filter sees
	// uniform inputs.
	SampleRate int `yaml:"sample_rate"`
	// Endpoint overrides the regional Azure TTS endpoint. Used by tests;
	// normally derived from SPEECH_REGION.
	Endpoint string `yaml:"endpoint"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

func (c *Config) Validate() error {
	if c.FFmpeg.FrameRate < 0 {
		return fmt.Errorf("ffmpeg.frame_rate must be positive")
	}
	if c.Speech.SampleRate < 0 {
		return fmt.Errorf("speech.sample_rate must be positive")
	}

	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.FrameRate == 0 {
		c.FFmpeg.FrameRate = 5
	}
	if c.FFmpeg.Tune == "" {
		c.FFmpeg.Tune = "stillimage"
	}
	if c.Speech.SampleRate == 0 {
		c.Speech.SampleRate = 24000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
