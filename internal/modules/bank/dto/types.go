package dto

type ImportInput struct{}

type ImportOutput struct {
	InputPath  string
	OutputPath string
	Parsed     int
	Rejected   int
	Existing   int
	Total      int
	Duplicates []int
	Saved      bool
	Cleared    bool
	Indexed    bool
	Halted     bool
}

type ListInput struct {
	Type string
}

type RecordOutput struct {
	ID       int
	Question []string
	Type     string
	Answer   string
}

type TypeCountOutput struct {
	Type  string
	Count int
}

type StatsOutput struct {
	Total      int
	Types      []TypeCountOutput
	Duplicates int
}

type ReindexInput struct{}

type ReindexOutput struct {
	Rows int
}
