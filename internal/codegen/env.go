package codegen

import (
	"go.uber.org/zap"

	"github.com/roach88/girgen/internal/config"
	"github.com/roach88/girgen/internal/library"
)

// Env is everything an emitter may read. It is built once per run and never
// mutated by emitters.
type Env struct {
	Library *library.Library
	Config  *config.Config
	Logger  *zap.Logger
}

// NewEnv builds an Env. A nil logger discards output.
func NewEnv(lib *library.Library, cfg *config.Config, log *zap.Logger) *Env {
	if log == nil {
		log = zap.NewNop()
	}
	return &Env{Library: lib, Config: cfg, Logger: log}
}

// IsTooLowVersion reports whether v is at or below min_cfg_version, meaning
// every supported build already has it.
func (e *Env) IsTooLowVersion(v *library.Version) bool {
	return v != nil && v.Compare(e.Config.MinCfgVersion) <= 0
}

// NeedsGuard reports whether v must be gated behind a feature.
func (e *Env) NeedsGuard(v *library.Version) bool {
	return v != nil && v.Compare(e.Config.MinCfgVersion) > 0
}
