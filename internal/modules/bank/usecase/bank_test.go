package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	bankout "qbank/internal/modules/bank/adapter/out"
	"qbank/internal/modules/bank/domain"
	"qbank/internal/modules/bank/dto"
	bankin "qbank/internal/modules/bank/port/in"
	"qbank/internal/modules/bank/service"
	"qbank/internal/modules/bank/usecase"
	"qbank/internal/platform/clock"
	apperrors "qbank/internal/platform/errors"
	"qbank/internal/platform/logging"
)

type fixture struct {
	dir    string
	input  string
	output string
	log    *logging.Recorder
	uc     bankin.Usecase
}

func newFixture(t *testing.T, opts usecase.Options) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		input:  filepath.Join(dir, "test.txt"),
		output: filepath.Join(dir, "result.json"),
		log:    logging.NewRecorder(),
	}
	svc := service.NewBankService(
		bankout.NewTextInputSource(f.input),
		bankout.NewRecordStore(f.output),
		nil,
		f.log.Named("bank"),
	)
	f.uc = usecase.NewInteractor(svc, opts, f.log)
	return f
}

func (f fixture) write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func (f fixture) read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestImportParsesMergesSortsAndClearsInput(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.output, `[
  {"id": 2, "question": ["old"], "type": "math", "answer": "x"}
]`)
	f.write(t, f.input, "7\nWhat is 2+2?\nmath\n4\n\n\n3\nmath\n4\n\n\n1\nCapital of France?\ngeography\nParis")

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Halted || !out.Saved || !out.Cleared {
		t.Fatalf("unexpected import flags %+v", out)
	}
	if out.Parsed != 3 || out.Existing != 1 || out.Total != 4 {
		t.Fatalf("unexpected counts %+v", out)
	}

	records, err := f.uc.List(context.Background(), dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, r := range records {
		got = append(got, r.Type+"#"+strconv.Itoa(r.ID))
	}
	want := []string{"geography#1", "math#2", "math#3", "math#7"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order\n got %v\nwant %v", got, want)
	}
	if len(records[2].Question) != 0 {
		t.Fatalf("three line block should have empty question, got %q", records[2].Question)
	}
	if info, err := os.Stat(f.input); err != nil || info.Size() != 0 {
		t.Fatalf("input should be emptied, info=%v err=%v", info, err)
	}
}

func TestImportWithNothingParsedLeavesFilesUntouched(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	const existing = "[\n  {\"id\": 1, \"question\": [], \"type\": \"a\", \"answer\": \"b\"}\n]"
	const input = "1\nonly two\n\n\nx\nq\nmath\n4\n"
	f.write(t, f.output, existing)
	f.write(t, f.input, input)

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !out.Halted || out.Saved || out.Cleared || out.Rejected != 1 {
		t.Fatalf("expected halted import, got %+v", out)
	}
	if f.read(t, f.output) != existing || f.read(t, f.input) != input {
		t.Fatalf("files must stay byte-identical when nothing parsed")
	}
	if len(f.log.Find("warn", "failed to parse block")) != 1 {
		t.Fatalf("expected one parse warning, got %v", f.log.Entries())
	}
	if len(f.log.Find("warn", "no new records, nothing to do")) != 1 {
		t.Fatalf("expected halt warning, got %v", f.log.Entries())
	}
}

func TestImportMissingInputHaltsWithoutCreatingOutput(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !out.Halted {
		t.Fatalf("expected halt, got %+v", out)
	}
	if _, err := os.Stat(f.output); !os.IsNotExist(err) {
		t.Fatalf("output must not be created, stat err=%v", err)
	}
	if _, err := os.Stat(f.input); !os.IsNotExist(err) {
		t.Fatalf("input must not be created, stat err=%v", err)
	}
	if len(f.log.Find("warn", "input file does not exist")) != 1 {
		t.Fatalf("expected missing input warning, got %v", f.log.Entries())
	}
}

func TestImportSkipsBadIDAndShortBlocksButKeepsGoing(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.input, "x\nq\nmath\n4\n\n\n9\nshort\n\n\n5\nq\nmath\n4\n")

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Parsed != 1 || out.Rejected != 1 || out.Total != 1 {
		t.Fatalf("unexpected counts %+v", out)
	}
	records, err := f.uc.List(context.Background(), dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != 5 {
		t.Fatalf("unexpected records %+v", records)
	}
	warnings := f.log.Find("warn", "failed to parse block")
	if len(warnings) != 1 || warnings[0].Arg("block") != `["x" "q" "math" "4"]` {
		t.Fatalf("expected warning naming the bad block, got %v", warnings)
	}
}

func TestImportWarnsOnEveryDuplicateButKeepsAll(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.output, `[{"id": 4, "question": ["b"], "type": "t", "answer": "old"}]`)
	f.write(t, f.input, "4\nb\nt\nnew\n\n\n4\na\nt\nnewer\n\n\n4\nb\nt\nnewest\n")

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(out.Duplicates, []int{4, 4, 4}) {
		t.Fatalf("expected three duplicate reports, got %v", out.Duplicates)
	}
	if got := len(f.log.Find("warn", "duplicate id, ordering by first question line")); got != 3 {
		t.Fatalf("expected three duplicate warnings, got %d", got)
	}
	records, err := f.uc.List(context.Background(), dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var answers []string
	for _, r := range records {
		answers = append(answers, r.Answer)
	}
	if !reflect.DeepEqual(answers, []string{"newer", "old", "new", "newest"}) {
		t.Fatalf("expected stable append-only order, got %v", answers)
	}
}

func TestImportTwiceLeavesOutputUnchanged(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.input, "1\nq\nmath\n4\n")
	if _, err := f.uc.Import(context.Background(), dto.ImportInput{}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	first := f.read(t, f.output)

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !out.Halted {
		t.Fatalf("second import should halt, got %+v", out)
	}
	if f.read(t, f.output) != first {
		t.Fatalf("output changed on second run")
	}
}

func TestImportCorruptExistingBankStartsEmpty(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.output, "{not json")
	f.write(t, f.input, "1\nq\nmath\n4\n")

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Existing != 0 || out.Total != 1 || !out.Saved {
		t.Fatalf("unexpected result %+v", out)
	}
	if len(f.log.Find("warn", "failed to read existing bank, starting empty")) != 1 {
		t.Fatalf("expected corrupt bank warning, got %v", f.log.Entries())
	}
}

func TestImportClearsInputEvenWhenSaveFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	if err := os.Mkdir(f.output, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f.write(t, f.input, "1\nq\nmath\n4\n")

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import must not fail: %v", err)
	}
	if out.Saved || !out.Cleared {
		t.Fatalf("expected failed save and cleared input, got %+v", out)
	}
	if f.read(t, f.input) != "" {
		t.Fatalf("input should be empty after a run that parsed records")
	}
	if len(f.log.Find("error", "failed to save bank")) != 1 {
		t.Fatalf("expected save failure to be reported, got %v", f.log.Entries())
	}
}

func TestImportKeepsInputWhenSaveFailsAndGateEnabled(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{KeepInputOnSaveError: true})
	if err := os.Mkdir(f.output, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f.write(t, f.input, "1\nq\nmath\n4\n")

	out, err := f.uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Saved || out.Cleared {
		t.Fatalf("expected input kept, got %+v", out)
	}
	if f.read(t, f.input) != "1\nq\nmath\n4\n" {
		t.Fatalf("input must be kept when the gate is enabled")
	}
}

func TestImportHonorsCancelledContext(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.input, "1\nq\nmath\n4\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.uc.Import(ctx, dto.ImportInput{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if f.read(t, f.input) == "" {
		t.Fatalf("cancelled import must not touch the input")
	}
}

func TestListFilterAndStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.output, `[
  {"id": 1, "question": [], "type": "a", "answer": "x"},
  {"id": 1, "question": [], "type": "b", "answer": "y"},
  {"id": 2, "question": ["q"], "type": "b", "answer": "z"}
]`)
	records, err := f.uc.List(context.Background(), dto.ListInput{Type: "b"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].Answer != "y" {
		t.Fatalf("unexpected filtered records %+v", records)
	}
	stats, err := f.uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := dto.StatsOutput{Total: 3, Duplicates: 1, Types: []dto.TypeCountOutput{{Type: "a", Count: 1}, {Type: "b", Count: 2}}}
	if !reflect.DeepEqual(stats, want) {
		t.Fatalf("got %+v want %+v", stats, want)
	}

	f.write(t, f.output, "garbage")
	if _, err := f.uc.List(context.Background(), dto.ListInput{}); err == nil {
		t.Fatalf("list should surface store errors")
	}
}

func TestReindexAndImportProjection(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := filepath.Join(dir, "test.txt")
	output := filepath.Join(dir, "result.json")
	projector, err := bankout.NewSQLiteRecordProjector(filepath.Join(dir, ".qbank", "qbank.db"), clock.Fixed(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	defer projector.Close()
	svc := service.NewBankService(bankout.NewTextInputSource(input), bankout.NewRecordStore(output), projector, logging.Discard())
	uc := usecase.NewInteractor(svc, usecase.Options{}, nil)

	if err := os.WriteFile(input, []byte("1\nq\nmath\n4\n\n\n2\nhistory\n1066\n"), 0o644); err != nil {
		t.Fatalf("seed input: %v", err)
	}
	out, err := uc.Import(context.Background(), dto.ImportInput{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !out.Indexed {
		t.Fatalf("expected projection after import, got %+v", out)
	}
	types, err := uc.Types(context.Background())
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	if !reflect.DeepEqual(types, []dto.TypeCountOutput{{Type: "history", Count: 1}, {Type: "math", Count: 1}}) {
		t.Fatalf("unexpected types %+v", types)
	}
	re, err := uc.Reindex(context.Background(), dto.ReindexInput{})
	if err != nil || re.Rows != 2 {
		t.Fatalf("reindex: %+v err=%v", re, err)
	}
}

func TestReindexWithoutIndexFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	if _, err := f.uc.Reindex(context.Background(), dto.ReindexInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.uc.Types(context.Background()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestOrderingInvariantHoldsForPersistedBank(t *testing.T) {
	t.Parallel()
	f := newFixture(t, usecase.Options{})
	f.write(t, f.input, "3\nz\nb\n1\n\n1\ny\nb\n1\n\n2\nq\na\n1\n\n1\nx\nb\n1\n\n0\nb\n1\n")
	if _, err := f.uc.Import(context.Background(), dto.ImportInput{}); err != nil {
		t.Fatalf("import: %v", err)
	}
	records, err := f.uc.List(context.Background(), dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(records); i++ {
		a := domain.Record{ID: records[i-1].ID, Type: records[i-1].Type, Question: records[i-1].Question}
		b := domain.Record{ID: records[i].ID, Type: records[i].Type, Question: records[i].Question}
		if domain.Less(b, a) {
			t.Fatalf("records %d and %d violate ordering: %+v", i-1, i, records)
		}
	}
}
