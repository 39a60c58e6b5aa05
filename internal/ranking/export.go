package ranking

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"Rank", "Name", "Team", "Position", "Age", "Card Type", "Value"}

// ExportCSV writes a ranked list with the standard leaderboard columns.
func ExportCSV(w io.Writer, entries []Entry, metric Metric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			e.Player.Name,
			e.Player.Team,
			e.Player.Position,
			strconv.Itoa(e.Player.Age),
			e.Player.CardType,
			metric.Format(e.Value),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
