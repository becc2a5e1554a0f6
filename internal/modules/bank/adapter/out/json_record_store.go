package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"qbank/internal/modules/bank/domain"
	bankout "qbank/internal/modules/bank/port/out"
	"qbank/internal/platform/fsutil"
)

type JSONRecordStore struct {
	path string
}

func NewJSONRecordStore(path string) bankout.RecordStore {
	return &JSONRecordStore{path: path}
}

func (s *JSONRecordStore) Path() string { return s.path }

func (s *JSONRecordStore) Load(_ context.Context) ([]domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("read bank: %w", err)
	}
	var records []domain.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return normalized(records), nil
}

// Save writes the bank indented by two spaces without escaping non-ASCII or
// HTML characters, U+2028 and U+2029 included.
func (s *JSONRecordStore) Save(_ context.Context, records []domain.Record) error {
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized(records)); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	if err := fsutil.AtomicWriteFile(s.path, unescapeLineSeparators(buf.Bytes()), 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into raw runes. Escape pairs such as \\ are copied whole
// so an escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && string(data[i+1:i+5]) == "u202" && (data[i+5] == '8' || data[i+5] == '9') {
			r := '\u2028'
			if data[i+5] == '9' {
				r = '\u2029'
			}
			out = utf8.AppendRune(out, r)
			i += 5
			continue
		}
		out = append(out, data[i])
		if i+1 < len(data) {
			i++
			out = append(out, data[i])
		}
	}
	return out
}
