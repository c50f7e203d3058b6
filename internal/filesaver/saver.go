// Package filesaver commits generated files atomically.
//
// Save writes into a temporary file next to the target and renames it over
// the target only when the fill function succeeds. A failed fill leaves the
// existing file untouched.
package filesaver

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/logger"
)

// BackupSuffix is appended to the previous version of a replaced file.
const BackupSuffix = ".bak"

// rename is swapped in tests to simulate a failing commit.
var rename = os.Rename

// Saver writes files through a temp-file-and-rename commit.
type Saver struct {
	MakeBackup bool
	Logger     *zap.Logger
}

// New returns a Saver. A nil logger discards output.
func New(makeBackup bool, log *zap.Logger) *Saver {
	if log == nil {
		log = logger.Nop()
	}
	return &Saver{MakeBackup: makeBackup, Logger: log}
}

// Save creates the parent directories of path, calls fill with a buffered
// writer and commits the result.
func (s *Saver) Save(path string, fill func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrapf(err, "setting mode of %s", tmpName)
	}

	backedUp := false
	if s.MakeBackup {
		if backedUp, err = backup(path); err != nil {
			return err
		}
	}
	if err := rename(tmpName, path); err != nil {
		err = errors.Wrapf(err, "replacing %s", path)
		if backedUp {
			if rerr := rename(path+BackupSuffix, path); rerr != nil {
				return errors.Wrapf(err, "restoring %s: %v", path, rerr)
			}
		}
		return err
	}

	s.log().Debug("saved file", zap.String(logger.FieldFile, path), zap.Bool("backup", s.MakeBackup))
	return nil
}

func (s *Saver) log() *zap.Logger {
	if s.Logger == nil {
		return logger.Nop()
	}
	return s.Logger
}

// backup renames an existing path to path.bak and reports whether it did.
// A missing path is not an error.
func backup(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking %s", path)
	}
	if err := rename(path, path+BackupSuffix); err != nil {
		return false, errors.Wrapf(err, "backing up %s", path)
	}
	return true, nil
}
