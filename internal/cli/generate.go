package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/girgen/internal/codegen/enums"
	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/filesaver"
	"github.com/roach88/girgen/internal/logger"
)

// GenerateResult is the outcome of a generate run.
type GenerateResult struct {
	File         string   `json:"file,omitempty" yaml:"file,omitempty"`
	Enumerations []string `json:"enumerations" yaml:"enumerations"`
	ModLines     []string `json:"mod_lines" yaml:"mod_lines"`
	ModOutput    string   `json:"mod_output,omitempty" yaml:"mod_output,omitempty"`
	Skipped      bool     `json:"skipped" yaml:"skipped"`
}

// renderText prints the re-export lines so they can be pasted into the
// parent module.
func (r GenerateResult) renderText(w io.Writer) {
	if r.Skipped {
		fmt.Fprintln(w, "No enumerations selected, nothing written")
		return
	}
	for _, line := range r.ModLines {
		fmt.Fprintln(w, line)
	}
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var modOutput string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate enums.rs for the configured library",
		Long: `Generate enums.rs under target_path for every enumeration whose object
status is generate.

The re-export lines for the parent module are printed on stdout. With
--mod-output they are also written to a file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, modOutput, cmd)
		},
	}

	addPathFlags(cmd, true)
	cmd.Flags().StringVar(&modOutput, "mod-output", "", "write the re-export lines to this file")

	return cmd
}

func runGenerate(opts *RootOptions, modOutput string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}

	saver := filesaver.New(s.cfg.MakeBackup, s.log)
	lines, err := enums.Generate(s.env, s.cfg.TargetPath, saver)
	if err != nil {
		return generateError(s.out, err)
	}

	result := GenerateResult{ModLines: lines, Skipped: lines == nil}
	if result.Skipped {
		s.log.Info("no enumerations selected")
		return s.out.Success(result)
	}

	sel, _ := enums.Select(s.env)
	for _, e := range sel.Enums {
		result.Enumerations = append(result.Enumerations, e.Enum.Name)
	}
	result.File = filepath.Join(s.cfg.TargetPath, enums.FileName)

	if modOutput != "" {
		err := saver.Save(modOutput, func(w io.Writer) error {
			_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
			return err
		})
		if err != nil {
			return s.out.Fail(ErrCodeWriteFailed, err.Error(), nil)
		}
		result.ModOutput = modOutput
	}

	s.log.Info("generated enumerations",
		zap.String(logger.FieldFile, result.File),
		zap.Int(logger.FieldCount, len(result.Enumerations)),
	)
	return s.out.Success(result)
}

// generateError reports a failed generation. Name conflicts carry the
// offending members as details.
func generateError(out *OutputFormatter, err error) error {
	var conflict *enums.NameConflictError
	if errors.As(err, &conflict) {
		return out.Fail(ErrCodeGenerateFailed, err.Error(), map[string]interface{}{
			"variant": conflict.Name,
			"members": conflict.Members,
		})
	}
	return out.Fail(ErrCodeGenerateFailed, err.Error(), nil)
}
