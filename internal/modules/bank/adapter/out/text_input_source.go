package out

import (
	"context"
	"fmt"
	"os"
	"strings"

	bankout "qbank/internal/modules/bank/port/out"
	apperrors "qbank/internal/platform/errors"
	"qbank/internal/platform/fsutil"
)

type TextInputSource struct {
	path string
}

func NewTextInputSource(path string) bankout.InputSource {
	return &TextInputSource{path: path}
}

func (s *TextInputSource) Path() string { return s.path }

// ReadLines returns the file split into lines with any newline convention
// normalized and a leading byte order mark removed.
func (s *TextInputSource) ReadLines(_ context.Context) ([]string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrInputMissing
		}
		return nil, fmt.Errorf("read input: %w", err)
	}
	text := strings.TrimPrefix(string(payload), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return []string{}, nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func (s *TextInputSource) Clear(_ context.Context) error {
	return fsutil.Truncate(s.path, 0o644)
}
