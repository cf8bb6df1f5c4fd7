// Package export renders team rosters as xlsx workbooks.
package export

import (
	"strconv"

	"github.com/mcdev12/bpl/go/internal/models"
)

// Header is the first row of every roster sheet.
var Header = []string{"Player Name", "City", "Playing Role", "Captain", "Wicket Keeper", "Batting Order"}

// columnWidths are in characters, one per Header column.
var columnWidths = []float64{20, 15, 15, 10, 15, 15}

// Row is one player line of a roster sheet
type Row struct {
	PlayerName   string
	City         string
	PlayingRole  string
	Captain      string
	WicketKeeper string
	BattingOrder string // blank when the player has no slot
}

// RowsFor maps players to sheet rows, keeping their order.
func RowsFor(players []models.Player) []Row {
	rows := make([]Row, len(players))
	for i, p := range players {
		row := Row{
			PlayerName:   p.Name,
			PlayingRole:  string(p.PlayingRole),
			Captain:      yesNo(p.IsCaptain),
			WicketKeeper: yesNo(p.IsWicketKeeper),
		}
		if p.City != nil {
			row.City = *p.City
		}
		if p.BattingOrder != nil {
			row.BattingOrder = strconv.Itoa(*p.BattingOrder)
		}
		rows[i] = row
	}
	return rows
}

// cells returns the row as sheet values. The batting order is written as a
// number so spreadsheets can sort on it.
func (r Row) cells() []any {
	var order any = ""
	if n, err := strconv.Atoi(r.BattingOrder); err == nil {
		order = n
	}
	return []any{r.PlayerName, r.City, r.PlayingRole, r.Captain, r.WicketKeeper, order}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
