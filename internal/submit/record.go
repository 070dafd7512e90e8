// Package submit turns finished games into solution records and delivers
// them to a configurable sink: stdout, a JSON file, the local database or
// the contest HTTP endpoint.
package submit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

// Record is one entry of a solution file.
type Record struct {
	ProblemID int    `json:"problemId"`
	Seed      uint32 `json:"seed"`
	Tag       string `json:"tag"`
	Solution  string `json:"solution"`
}

// Submission is a record plus the scores it achieved locally.
type Submission struct {
	Record
	Score      int    // move score plus power score
	PowerScore int    // phrase bonus included in Score
	Reason     string // why the game ended
}

// NewSubmission builds a submission from an engine result. phrases may be
// nil to skip phrase scoring.
func NewSubmission(res core.Result, tag string, phrases []string) Submission {
	power := 0
	if len(phrases) > 0 {
		power = core.PowerScore(res.Solution, phrases)
	}
	return Submission{
		Record: Record{
			ProblemID: res.ProblemID,
			Seed:      res.Seed,
			Tag:       tag,
			Solution:  res.Solution,
		},
		Score:      res.Score + power,
		PowerScore: power,
		Reason:     res.Reason.String(),
	}
}

// NewTag returns a fresh tag for a batch of submissions.
func NewTag() string {
	return "hexfall-" + uuid.NewString()
}

// ParseRecords decodes a JSON array of records.
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("submit: parsing records: %w", err)
	}
	return records, nil
}

// MarshalRecords encodes records as a JSON array.
func MarshalRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("submit: encoding records: %w", err)
	}
	return data, nil
}

// ReadRecords loads a solution file.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("submit: reading %s: %w", path, err)
	}
	return ParseRecords(data)
}
