package out

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"qbank/internal/modules/bank/domain"
	bankout "qbank/internal/modules/bank/port/out"
	"qbank/internal/platform/fsutil"
)

type YAMLRecordStore struct {
	path string
}

func NewYAMLRecordStore(path string) bankout.RecordStore {
	return &YAMLRecordStore{path: path}
}

func (s *YAMLRecordStore) Path() string { return s.path }

func (s *YAMLRecordStore) Load(_ context.Context) ([]domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("read bank: %w", err)
	}
	var records []domain.Record
	if err := yaml.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return normalized(records), nil
}

func (s *YAMLRecordStore) Save(_ context.Context, records []domain.Record) error {
	buf := bytes.Buffer{}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalized(records)); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	if err := fsutil.AtomicWriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}
