package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	apperrors "qbank/internal/platform/errors"
)

// MinBlockLines is the smallest block that carries id, type and answer.
const MinBlockLines = 3

var ErrBlockTooShort = errors.New("block too short")

// SplitBlocks groups lines into maximal runs of non-blank lines. Lines are
// right-trimmed; blank means empty after trimming both sides.
func SplitBlocks(lines []string) [][]string {
	var blocks [][]string
	var buffer []string
	flush := func() {
		if len(buffer) > 0 {
			blocks = append(blocks, buffer)
			buffer = nil
		}
	}
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		buffer = append(buffer, line)
	}
	flush()
	return blocks
}

// ParseBlock maps a block onto a Record: first line id, second to last type,
// last answer, everything between is question text.
func ParseBlock(block []string) (Record, error) {
	n := len(block)
	if n < MinBlockLines {
		return Record{}, fmt.Errorf("%w: %d lines", ErrBlockTooShort, n)
	}
	id, err := ParseID(block[0])
	if err != nil {
		return Record{}, err
	}
	question := make([]string, 0, n-MinBlockLines)
	for _, line := range block[1 : n-2] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		question = append(question, line)
	}
	return Record{
		ID:       id,
		Question: question,
		Type:     strings.TrimSpace(block[n-2]),
		Answer:   strings.TrimSpace(block[n-1]),
	}, nil
}

// ParseID reads a signed decimal id. Full-width digits and signs are folded
// to ASCII first.
func ParseID(raw string) (int, error) {
	folded := width.Narrow.String(strings.TrimSpace(raw))
	id, err := strconv.Atoi(folded)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not an integer", apperrors.ErrInvalidInput, strings.TrimSpace(raw))
	}
	return id, nil
}
