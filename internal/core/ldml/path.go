package ldml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	perr "eltranslit/internal/platform/errors"
)

var (
	// ErrNotFound is returned when a rule file path does not exist
	ErrNotFound = perr.New(perr.ErrorCodeNotFound, "ldml: rule file not found")
	// ErrNotRegularFile is returned when the path exists but is a directory, device, etc
	ErrNotRegularFile = perr.New(perr.ErrorCodeInvalidArgument, "ldml: not a regular file")
	// ErrMalformed is returned for documents without a usable transform
	ErrMalformed = perr.New(perr.ErrorCodeValidation, "ldml: malformed transform")
	// ErrUnavailable is returned for transforms the engine cannot run
	ErrUnavailable = perr.New(perr.ErrorCodeUnavailable, "ldml: transform unavailable")
)

// seam for tests
var userHomeDir = os.UserHomeDir

// ResolvePath expands a leading ~, makes raw absolute and follows symlinks
// The result is guaranteed to name an existing regular file
func ResolvePath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", perr.Wrap(ErrNotFound, perr.ErrorCodeNotFound, "ldml: empty path")
	}

	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		home, err := userHomeDir()
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "ldml: resolve home directory")
		}
		p = filepath.Join(home, p[1:])
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "ldml: absolute path for %s", raw)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", perr.Wrapf(ErrNotFound, perr.ErrorCodeNotFound, "ldml: %s", abs)
		}
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "ldml: resolve %s", abs)
	}

	st, err := os.Stat(resolved)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "ldml: stat %s", resolved)
	}
	if !st.Mode().IsRegular() {
		return "", perr.Wrapf(ErrNotRegularFile, perr.ErrorCodeInvalidArgument, "ldml: %s", resolved)
	}
	return resolved, nil
}
