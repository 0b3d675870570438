package translate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/internal/util"
)

// Conventional extensions for Unicode source and its ASCII translation.
const (
	SourceExtension = ".f90u"
	OutputExtension = ".f90"
)

// FileResult describes one translated file.
type FileResult struct {
	Result
	Source string
	Output string
}

// OutputPath derives the default destination for src: x.f90u becomes x.f90,
// anything else gets .f90 appended (x.f90 becomes x.f90.f90) so a source is
// never overwritten by its own translation.
func OutputPath(src string) string {
	ext := filepath.Ext(src)
	if strings.EqualFold(ext, SourceExtension) {
		return strings.TrimSuffix(src, ext) + OutputExtension
	}
	return src + OutputExtension
}

// TranslateBytes translates an in-memory source.
func TranslateBytes(src []byte, opts Options) ([]byte, Result, error) {
	res, err := Translate(string(src), opts)
	if err != nil {
		return nil, Result{}, err
	}
	return []byte(res.Text), res, nil
}

// TranslateFile reads src, translates it and writes dst atomically.
// An empty dst means OutputPath(src). Nothing is written when reading or
// translating fails.
func TranslateFile(src, dst string, opts Options) (*FileResult, error) {
	if dst == "" {
		dst = OutputPath(src)
	}

	data, err := ReadSource(src)
	if err != nil {
		return nil, err
	}

	return WriteTranslation(src, dst, data, opts)
}

// ReadSource reads a source file, mapping a missing path to
// errors.ErrSourceNotFound. Other read failures keep their cause.
func ReadSource(src string) ([]byte, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSourceNotFoundError(src)
		}
		return nil, errors.Wrapf(err, "failed to read %s", src)
	}
	return data, nil
}

// WriteTranslation translates already-read source bytes and commits the
// result to dst. Callers that hash the source use this to translate exactly
// the bytes they hashed.
func WriteTranslation(src, dst string, data []byte, opts Options) (*FileResult, error) {
	if samePath(src, dst) {
		return nil, errors.WithHint(
			errors.Newf("output %s would overwrite its own source", dst),
			"choose a different output path or extension")
	}

	out, res, err := TranslateBytes(data, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to translate %s", src)
	}

	perm := os.FileMode(util.DefaultFilePermissions)
	if info, err := os.Stat(src); err == nil {
		perm = info.Mode().Perm()
	}
	if err := util.WriteFileAtomic(dst, out, perm); err != nil {
		return nil, err
	}

	return &FileResult{Result: res, Source: src, Output: dst}, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
