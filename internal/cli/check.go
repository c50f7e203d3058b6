package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/girgen/internal/codegen/enums"
	"github.com/roach88/girgen/internal/compiler"
	"github.com/roach88/girgen/internal/filesaver"
	"github.com/roach88/girgen/internal/logger"
)

// CheckResult reports whether the committed enums.rs matches what generate
// would write.
type CheckResult struct {
	File     string                     `json:"file" yaml:"file"`
	UpToDate bool                       `json:"up_to_date" yaml:"up_to_date"`
	Skipped  bool                       `json:"skipped" yaml:"skipped"`
	Problems []compiler.ValidationError `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// OK reports whether the check passed.
func (r CheckResult) OK() bool {
	return r.UpToDate && len(r.Problems) == 0
}

func (r CheckResult) renderText(w io.Writer) {
	switch {
	case r.Skipped:
		fmt.Fprintln(w, "✓ No enumerations selected")
	case r.UpToDate:
		fmt.Fprintf(w, "✓ %s is up to date\n", r.File)
	default:
		fmt.Fprintf(w, "✗ %s is out of date, run girgen generate\n", r.File)
	}

	if len(r.Problems) > 0 {
		fmt.Fprintf(w, "\n✗ %d snapshot problem(s)\n\n", len(r.Problems))
		for _, p := range r.Problems {
			fmt.Fprintf(w, "  %s: %s\n    %s\n", p.Code, p.Field, p.Message)
		}
	}
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that enums.rs is up to date",
		Long: `Generate into a scratch directory and compare the result with
target_path/enums.rs. The snapshot is validated as well.

Exits with status 1 when the file differs, is missing, or the snapshot has
problems.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}

	addPathFlags(cmd, true)

	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}

	result := CheckResult{
		File:     filepath.Join(s.cfg.TargetPath, enums.FileName),
		Problems: compiler.Validate(s.env.Library),
	}

	scratch, err := os.MkdirTemp("", "girgen-check-*")
	if err != nil {
		return s.out.Fail(ErrCodeWriteFailed, err.Error(), nil)
	}
	defer os.RemoveAll(scratch)

	lines, err := enums.Generate(s.env, scratch, filesaver.New(false, s.log))
	if err != nil {
		return generateError(s.out, err)
	}

	if lines == nil {
		result.Skipped = true
		result.UpToDate = true
	} else {
		want, err := os.ReadFile(filepath.Join(scratch, enums.FileName))
		if err != nil {
			return s.out.Fail(ErrCodeGeneric, err.Error(), nil)
		}
		have, err := os.ReadFile(result.File)
		switch {
		case os.IsNotExist(err):
			s.log.Debug("generated file missing", zap.String(logger.FieldFile, result.File))
		case err != nil:
			return s.out.Fail(ErrCodeNotFound, err.Error(), nil)
		default:
			result.UpToDate = bytes.Equal(want, have)
		}
	}

	if err := s.out.Success(result); err != nil {
		return err
	}
	if !result.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%s is out of date or the snapshot has problems", result.File))
	}
	return nil
}
