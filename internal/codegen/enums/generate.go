package enums

import (
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/roach88/girgen/internal/codegen"
	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/logger"
)

// FileName is the output file written under the target directory.
const FileName = "enums.rs"

// Sink owns an output file. Save calls fill with a writer for the new
// contents and commits them only if fill returns nil.
type Sink interface {
	Save(path string, fill func(io.Writer) error) error
}

// WriteEnums writes the whole enums file for sel into w and returns the lines
// the parent module needs to re-export the generated enums.
func WriteEnums(w io.Writer, env *codegen.Env, sel Selection) ([]string, error) {
	if err := codegen.StartComments(w, env); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}
	if err := codegen.Uses(w, sel.Imports()); err != nil {
		return nil, errors.Wrap(err, "writing imports")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return nil, errors.Wrap(err, "writing imports")
	}

	modLines := []string{"\nmod enums;"}
	for _, s := range sel.Enums {
		variants, err := Resolve(s.Enum.Members, s.Object.Members)
		if err != nil {
			return nil, errors.Wrapf(err, "enumeration %s", s.Enum.Name)
		}

		if line, ok := codegen.VersionConditionString(env, s.Enum.Version, false, 0); ok {
			modLines = append(modLines, line)
		}
		modLines = append(modLines, "pub use self::enums::"+s.Enum.Name+";")

		env.Logger.Debug("emitting enumeration",
			zap.String(logger.FieldEnumeration, s.Enum.Name),
			zap.Int(logger.FieldCount, len(variants)),
			zap.Bool("display", s.Flags.Display),
			zap.Bool("error_domain", s.Flags.ErrorDomain),
			zap.Bool("dynamic_type", s.Flags.DynamicType),
		)
		if err := Emit(w, env, s, variants); err != nil {
			return nil, errors.Wrapf(err, "emitting %s", s.Enum.Name)
		}
	}
	return modLines, nil
}

// Generate writes rootPath/enums.rs through sink. It returns nil lines and no
// error when the configuration selects no enumeration; the sink is not
// called in that case.
func Generate(env *codegen.Env, rootPath string, sink Sink) ([]string, error) {
	sel, ok := Select(env)
	if !ok {
		env.Logger.Debug("no enumerations selected")
		return nil, nil
	}

	path := filepath.Join(rootPath, FileName)
	var lines []string
	err := sink.Save(path, func(w io.Writer) error {
		var err error
		lines, err = WriteEnums(w, env, sel)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "generating %s", path)
	}

	env.Logger.Debug("generated enumerations",
		zap.String(logger.FieldFile, path),
		zap.Int(logger.FieldCount, len(sel.Enums)),
	)
	return lines, nil
}
