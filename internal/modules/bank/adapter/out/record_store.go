package out

import (
	"path/filepath"
	"strings"

	"qbank/internal/modules/bank/domain"
	bankout "qbank/internal/modules/bank/port/out"
)

// NewRecordStore picks the persistence format from the file extension:
// .yaml and .yml get YAML, everything else JSON.
func NewRecordStore(path string) bankout.RecordStore {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLRecordStore(path)
	default:
		return NewJSONRecordStore(path)
	}
}

func normalized(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = r.Normalize()
	}
	return out
}
