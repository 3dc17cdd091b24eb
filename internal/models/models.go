package models

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/roster/internal/shared"
	"gopkg.in/yaml.v3"
)

// ID identifies a record within its collection. Zero means no ID.
type ID int

// Record is implemented by every entity kept in a collection.
type Record interface {
	RecordID() ID    // RecordID returns the identifier of this record
	Validate() error // Validate checks required fields and returns a wrapped [shared.ErrValidation]
}

// Collection names, used as storage keys by the store backends.
const (
	StudentsCollection    = "students"
	CoursesCollection     = "courses"
	InstructorsCollection = "instructors"
)

// ParseID converts user input ("5", " 5 ") to an [ID].
func ParseID(s string) (ID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a numeric id", shared.ErrInvalidInput, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: id must be positive, got %d", shared.ErrInvalidInput, n)
	}
	return ID(n), nil
}

// ParseIDList splits a comma-separated list of ids.
//
// Entries that do not parse are returned separately so callers can decide whether to drop or reject them.
func ParseIDList(s string) (ids []ID, rejected []string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := ParseID(part)
		if err != nil {
			rejected = append(rejected, part)
			continue
		}
		ids = append(ids, id)
	}
	return ids, rejected
}

// UnmarshalJSON accepts a number or a numeric string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*id = idFrom(raw)
	return nil
}

// UnmarshalYAML accepts a number or a numeric string.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*id = idFrom(raw)
	return nil
}

func idFrom(raw any) ID {
	switch v := raw.(type) {
	case float64:
		if v > 0 && v == math.Trunc(v) {
			return ID(v)
		}
	case int:
		if v > 0 {
			return ID(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return ID(n)
		}
	}
	return 0
}

// addID appends id to ids unless already present.
func addID(ids []ID, id ID) ([]ID, bool) {
	if slices.Contains(ids, id) {
		return ids, false
	}
	return append(ids, id), true
}

// removeID returns ids without any occurrence of id.
func removeID(ids []ID, id ID) ([]ID, bool) {
	out := make([]ID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out, len(out) != len(ids)
}

// uniqueIDs drops zero and duplicate ids, keeping first occurrences.
func uniqueIDs(ids []ID) []ID {
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
