package converter

import (
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/document"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type implConverter struct {
	cfg      *config.Config
	opts     Options
	docs     document.Service
	engine   speech.Engine
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Converter instance.
func New(cfg *config.Config, opts Options, docs document.Service, engine speech.Engine, exec executor.Executor, log logger.Logger) Converter {
	return &implConverter{
		cfg:      cfg,
		opts:     opts,
		docs:     docs,
		engine:   engine,
		executor: exec,
		logger:   log,
	}
}
