package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/girgen/internal/codegen"
	"github.com/roach88/girgen/internal/config"
	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/logger"
)

// session is the state shared by every command: output, logger, loaded
// configuration and the compiled library.
type session struct {
	out *OutputFormatter
	log *zap.Logger
	cfg *config.Config
	env *codegen.Env
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openSession loads configuration and library. Failures are reported through
// the formatter and returned as *ExitError.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := newFormatter(opts, cmd)
	log := logger.New(out.GetErrWriter(), logger.Options{
		Verbose: opts.Verbose,
		JSON:    out.Structured(),
	}).With(zap.String(logger.FieldComponent, cmd.Name()))

	cfg, err := config.Load(opts.Config, cmd.Flags())
	if err != nil {
		var details interface{}
		if hint := errors.FlattenHints(err); hint != "" {
			details = map[string]string{"hint": hint}
		}
		return nil, out.Fail(ErrCodeConfigInvalid, err.Error(), details)
	}
	if cfg.File != "" {
		log.Debug("loaded config", zap.String(logger.FieldFile, cfg.File))
	}

	res, err := LoadLibrary(cfg.GirDirectory, cfg.Library)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, out.Fail(loadErr.Code, loadErr.Message, positionDetails(loadErr))
		}
		return nil, out.Fail(ErrCodeGeneric, err.Error(), nil)
	}
	log.Debug("loaded library",
		zap.String("library", cfg.Library),
		zap.String("dir", cfg.GirDirectory),
		zap.Int(logger.FieldCount, res.FileCount),
	)

	for _, name := range cfg.ResolveTypeIDs(res.Library) {
		log.Warn("configured object not found in library", zap.String("object", name))
	}

	return &session{
		out: out,
		log: log,
		cfg: cfg,
		env: codegen.NewEnv(res.Library, cfg, log),
	}, nil
}

func positionDetails(e *LoadError) interface{} {
	if !e.Pos.IsValid() {
		return nil
	}
	return map[string]interface{}{
		"file":   e.Pos.Filename(),
		"line":   e.Pos.Line(),
		"column": e.Pos.Column(),
	}
}

// addPathFlags registers the path overrides understood by config.Load.
func addPathFlags(cmd *cobra.Command, target bool) {
	cmd.Flags().String("gir-directory", "", "directory holding the CUE introspection snapshot")
	if target {
		cmd.Flags().String("target-path", "", "directory receiving enums.rs")
	}
}
