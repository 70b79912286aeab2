package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case MatchList:
		o.printMatchList(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Match response type
type Match struct {
	RoomID     string         `json:"roomId"`
	Players    []string       `json:"players"`
	Winner     string         `json:"winner,omitempty"`
	Tie        bool           `json:"tie"`
	ByForfeit  bool           `json:"byForfeit"`
	Attempts   map[string]int `json:"attempts"`
	FinishedAt time.Time      `json:"finishedAt"`
}

// MatchList response type
type MatchList struct {
	Matches []Match `json:"matches"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Println("No matches recorded")
		return
	}

	for _, m := range l.Matches {
		outcome := "tie"
		if !m.Tie {
			outcome = "winner " + m.Winner
			if m.ByForfeit {
				outcome += " (forfeit)"
			}
		}
		fmt.Printf("%s  room %s  %s\n", m.FinishedAt.Format(time.RFC3339), m.RoomID, outcome)
		for _, p := range m.Players {
			fmt.Printf("  - %s: %d attempts\n", p, m.Attempts[p])
		}
	}
}
