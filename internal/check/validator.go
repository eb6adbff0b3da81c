// Package check reports integrity problems in a snippet collection.
package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/snip/internal/snippet"
)

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// IssueType identifies the kind of problem.
type IssueType string

const (
	IssueDuplicateID    IssueType = "duplicate_id"
	IssueMissingField   IssueType = "missing_field"
	IssueIDAheadCounter IssueType = "id_ahead_of_counter"
	IssueInvalidID      IssueType = "invalid_id"
	IssueBadCounter     IssueType = "bad_counter"
)

// Issue represents one integrity problem.
type Issue struct {
	Level   IssueLevel
	Type    IssueType
	ID      int // snippet id, 0 for collection-wide issues
	Index   int // position in the snippet file, -1 for collection-wide issues
	Message string
	// Fix is a suggested command, if one applies.
	Fix string
}

// Validator checks a snippet collection against the counter.
type Validator struct {
	nextID    int
	counterOK bool
}

// NewValidator creates a validator. counterOK is false when the counter file
// is missing or unparsable, in which case nextID is ignored.
func NewValidator(nextID int, counterOK bool) *Validator {
	return &Validator{nextID: nextID, counterOK: counterOK}
}

// Validate returns every issue found in snippets, errors before warnings,
// each group in file order.
func (v *Validator) Validate(snippets []snippet.Snippet) []Issue {
	var issues []Issue

	if !v.counterOK {
		issues = append(issues, Issue{
			Level:   LevelWarning,
			Type:    IssueBadCounter,
			Index:   -1,
			Message: "counter file is missing or not a positive integer; it will be reset to 1 on the next add",
			Fix:     "snip reset-ids",
		})
	}

	seen := make(map[int]int, len(snippets))
	for i, s := range snippets {
		if first, dup := seen[s.ID]; dup {
			issues = append(issues, Issue{
				Level:   LevelError,
				Type:    IssueDuplicateID,
				ID:      s.ID,
				Index:   i,
				Message: fmt.Sprintf("id %d is used by records %d and %d", s.ID, first+1, i+1),
				Fix:     "snip reset-ids",
			})
		} else {
			seen[s.ID] = i
		}

		if s.ID < 1 {
			issues = append(issues, Issue{
				Level:   LevelError,
				Type:    IssueInvalidID,
				ID:      s.ID,
				Index:   i,
				Message: fmt.Sprintf("record %d has non-positive id %d", i+1, s.ID),
				Fix:     "snip reset-ids",
			})
		}

		if missing := missingFields(s); len(missing) > 0 {
			issues = append(issues, Issue{
				Level:   LevelWarning,
				Type:    IssueMissingField,
				ID:      s.ID,
				Index:   i,
				Message: fmt.Sprintf("snippet %d has empty %s", s.ID, strings.Join(missing, ", ")),
				Fix:     fmt.Sprintf("snip edit %d", s.ID),
			})
		}

		if v.counterOK && s.ID >= v.nextID {
			issues = append(issues, Issue{
				Level:   LevelError,
				Type:    IssueIDAheadCounter,
				ID:      s.ID,
				Index:   i,
				Message: fmt.Sprintf("snippet %d is not below the counter (%d); the next add would reuse an id", s.ID, v.nextID),
				Fix:     "snip reset-ids",
			})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Level < issues[j].Level
	})
	return issues
}

func missingFields(s snippet.Snippet) []string {
	var missing []string
	if strings.TrimSpace(s.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(s.Language) == "" {
		missing = append(missing, "language")
	}
	if strings.TrimSpace(s.Code) == "" {
		missing = append(missing, "code")
	}
	return missing
}

// Summary counts issues by level.
func Summary(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Level {
		case LevelError:
			errors++
		case LevelWarning:
			warnings++
		}
	}
	return errors, warnings
}
