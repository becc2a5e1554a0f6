package domain

// Record is one parsed question block.
type Record struct {
	ID       int      `json:"id" yaml:"id"`
	Question []string `json:"question" yaml:"question"`
	Type     string   `json:"type" yaml:"type"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// FirstQuestion returns the first question line or "" when there is none.
func (r Record) FirstQuestion() string {
	if len(r.Question) == 0 {
		return ""
	}
	return r.Question[0]
}

// Normalize replaces a nil question list with an empty one so it persists as [].
func (r Record) Normalize() Record {
	if r.Question == nil {
		r.Question = []string{}
	}
	return r
}
