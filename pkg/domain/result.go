package domain

// DieResult is the snapshot of one evaluated die.
type DieResult struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Value   int     `json:"value"`
	Count   int     `json:"count"`
	Mode    DieMode `json:"mode,omitempty"`
	Success *int    `json:"success,omitempty"`
	Results []int   `json:"results"`
	Total   int     `json:"total"`

	// IsSuccess is nil for range-mode dice, where pass/fail does not apply.
	IsSuccess *bool  `json:"isSuccess,omitempty"`
	Message   string `json:"message,omitempty"`

	RangeID    string `json:"rangeId,omitempty"`
	RangeLabel string `json:"rangeLabel,omitempty"`

	// Targets are the roll ids this outcome branches to.
	Targets []string `json:"targets,omitempty"`
}

// Succeeded reports a threshold success. Range results always report false.
func (r DieResult) Succeeded() bool {
	return r.IsSuccess != nil && *r.IsSuccess
}

// RollResult is the snapshot of one executed roll.
type RollResult struct {
	RollID   string      `json:"rollId"`
	RollName string      `json:"rollName"`
	Dice     []DieResult `json:"dice"`
}

// HistorySession is one timestamped record of executing some set of Rolls.
// Sessions are immutable once stored.
type HistorySession struct {
	ID          string       `json:"id"`
	Timestamp   int64        `json:"timestamp"`
	JourneyID   string       `json:"journeyId"`
	JourneyName string       `json:"journeyName"`
	Rolls       []RollResult `json:"rolls"`
}

// NewSession is a HistorySession before the store assigns its id and timestamp.
type NewSession struct {
	JourneyID   string
	JourneyName string
	Rolls       []RollResult
}
