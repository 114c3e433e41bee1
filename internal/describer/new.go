package describer

import (
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

type implDescriber struct {
	apiKey string
	model  string
	logger logger.Logger
}

// New creates a Describer backed by the Gemini API.
func New(apiKey, model string, log logger.Logger) Describer {
	return &implDescriber{
		apiKey: apiKey,
		model:  model,
		logger: log,
	}
}
