package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	// ContentType of the generated workbooks
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// AllTeamsFileName is the download name of the all-teams workbook
	AllTeamsFileName = "all_teams_players.xlsx"

	maxSheetNameLen  = 31
	defaultSheetName = "Sheet1"
)

var (
	unsafeFileChars  = regexp.MustCompile(`[^A-Za-z0-9]`)
	sheetNameReplace = strings.NewReplacer(":", "", `\`, "", "/", "", "?", "", "*", "", "[", "", "]", "")
)

// TeamSheet is one team and the players to list on its sheet
type TeamSheet struct {
	Team    models.Team
	Players []models.Player
}

// FileName is the download name of a single-team workbook.
func FileName(teamName string) string {
	return unsafeFileChars.ReplaceAllString(teamName, "_") + "_players.xlsx"
}

// SheetName derives a valid sheet name from a team name: forbidden
// characters are removed, the result is cut to 31 characters and, when
// already present in used (case-insensitive), suffixed with " (n)". The
// chosen name is added to used. A sheet name never starts or ends with a
// space or a single quote.
func SheetName(teamName string, used map[string]bool) string {
	base := trimSheetEdges(sheetNameReplace.Replace(teamName))
	if base == "" {
		base = "Team"
	}
	name := truncateRunes(base, maxSheetNameLen)
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return trimSheetEdges(string(r[:n]))
}

func trimSheetEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\''
	})
}

// WriteTeam writes a workbook with a single sheet for team.
func WriteTeam(w io.Writer, team models.Team, players []models.Player) error {
	return WriteTeams(w, []TeamSheet{{Team: team, Players: players}})
}

// WriteTeams writes a workbook with one sheet per team, in the given order.
func WriteTeams(w io.Writer, sheets []TeamSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	used := make(map[string]bool, len(sheets))
	for i, s := range sheets {
		name := SheetName(s.Team.Name, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheetName, name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, headerStyle, RowsFor(s.Players)); err != nil {
			return fmt.Errorf("write sheet %q: %w", name, err)
		}
	}
	if len(sheets) == 0 {
		// a workbook needs one sheet, keep it with just the header
		if err := writeSheet(f, defaultSheetName, headerStyle, nil); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, rows []Row) error {
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(Header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row.cells()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
