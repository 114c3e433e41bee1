package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type sapiEngine struct {
	voiceIndex int
	executor   executor.Executor
	logger     logger.Logger
}

// NewSAPI creates an Engine that drives the Windows speech stack
// through a generated System.Speech PowerShell script. The voice is
// selected by the index number of the voices installed on the system.
func NewSAPI(voice string, exec executor.Executor, log logger.Logger) (Engine, error) {
	index := 0
	if voice != "" {
		parsed, err := strconv.Atoi(voice)
		if err != nil {
			return nil, fmt.Errorf("SAPI voice must be the index number of an installed voice, got %q", voice)
		}
		index = parsed
	}

	return &sapiEngine{voiceIndex: index, executor: exec, logger: log}, nil
}

func (e *sapiEngine) SynthesizeToFile(ctx context.Context, text, path string) error {
	if runtime.GOOS != "windows" {
		return fmt.Errorf("the SAPI speech engine is only available on Windows; use --api Azure")
	}

	if _, err := e.executor.LookPath("powershell"); err != nil {
		return fmt.Errorf("powershell is required for SAPI synthesis: %w", err)
	}

	script := sapiScript(e.voiceIndex, text, path)
	scriptPath := filepath.Join(os.TempDir(), "slidecast-sapi.ps1")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		return fmt.Errorf("write synthesis script: %w", err)
	}
	defer os.Remove(scriptPath)

	args := []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-File", scriptPath}
	if _, err := e.executor.Execute(ctx, "powershell", args...); err != nil {
		return fmt.Errorf("sapi synthesis: %w", err)
	}

	return nil
}

// sapiScript builds the System.Speech invocation. Strings are
// single-quoted for PowerShell, with embedded quotes doubled.
func sapiScript(voiceIndex int, text, path string) string {
	var b strings.Builder
	b.WriteString("Add-Type -AssemblyName System.Speech\n")
	b.WriteString("$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer\n")
	fmt.Fprintf(&b, "$voices = $synth.GetInstalledVoices()\n")
	fmt.Fprintf(&b, "$synth.SelectVoice($voices[%d].VoiceInfo.Name)\n", voiceIndex)
	fmt.Fprintf(&b, "$synth.SetOutputToWaveFile(%s)\n", psQuote(path))
	fmt.Fprintf(&b, "$synth.Speak(%s)\n", psQuote(text))
	b.WriteString("$synth.Dispose()\n")
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
