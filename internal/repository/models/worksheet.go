package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// JSONColumn stores a value as a jsonb column
type JSONColumn[T any] struct {
	Data T
}

// Value implements the driver.Valuer interface
func (j JSONColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (j *JSONColumn[T]) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		var zero T
		j.Data = zero
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("JSONColumn Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(raw) == 0 || string(raw) == "null" {
		var zero T
		j.Data = zero
		return nil
	}
	return json.Unmarshal(raw, &j.Data)
}

// FilterCriteria mirrors domain.FilterCriteria in its stored form
type FilterCriteria struct {
	SelectedChapters     []string  `json:"selectedChapters"`
	SelectedDifficulties []string  `json:"selectedDifficulties"`
	SelectedProblemTypes []string  `json:"selectedProblemTypes"`
	SelectedSubjects     []string  `json:"selectedSubjects"`
	CorrectRateRange     []float64 `json:"correctRateRange"`
	ProblemCount         int       `json:"problemCount"`
}

// SortRule mirrors domain.SortRule in its stored form
type SortRule struct {
	Field     string `json:"field"`
	Direction string `json:"direction,omitempty"`
}

// Worksheet is a row of the worksheets table
type Worksheet struct {
	ID         string                     `db:"id"`
	Title      string                     `db:"title"`
	Author     string                     `db:"author"`
	OwnerID    sql.NullString             `db:"owner_id"`
	ProblemIDs pq.StringArray             `db:"selected_problem_ids"`
	Criteria   JSONColumn[FilterCriteria] `db:"filter_criteria"`
	SortRules  JSONColumn[[]SortRule]     `db:"sort_rules"`
	IsPublic   bool                       `db:"is_public"`
	IDKind     string                     `db:"id_kind"`
	CreatedAt  time.Time                  `db:"created_at"`
	UpdatedAt  time.Time                  `db:"updated_at"`
}
