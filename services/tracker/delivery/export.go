package delivery

import (
	"babycare/domain"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	feedingsSheet = "Feedings"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	summaryHeader = []string{"Date", "Total", "Breast", "Breast Minutes", "Left", "Right", "Bottle", "Bottle ml", "Solid", "Solid g"}
	feedingHeader = []string{"Timestamp", "Type", "Start", "End", "Duration (min)", "Side", "Amount", "Notes"}
)

// buildFeedingWorkbook renders a monthly feeding report with one row per day
// and a sheet of the raw records.
func buildFeedingWorkbook(period *domain.FeedingPeriodSummary, records []domain.Feeding) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(feedingsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(period.Days)+1)
	for _, d := range period.Days {
		rows = append(rows, summaryRow(d.Date, d))
	}
	rows = append(rows, summaryRow("Total", period.Totals))
	if err := writeSheet(f, summarySheet, summaryHeader, rows, headerStyle); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Timestamp, r.Type, deref(r.StartTime), deref(r.EndTime),
			derefInt(r.Duration), deref(r.Side), derefFloat(r.Amount), r.Notes,
		})
	}
	if err := writeSheet(f, feedingsSheet, feedingHeader, rows, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryRow(label string, s domain.FeedingSummary) []interface{} {
	return []interface{}{
		label, s.TotalFeedings,
		s.BreastFeedings.Count, s.BreastFeedings.TotalMinutes, s.BreastFeedings.LeftSide, s.BreastFeedings.RightSide,
		s.BottleFeedings.Count, s.BottleFeedings.TotalMl,
		s.SolidFeedings.Count, s.SolidFeedings.TotalGrams,
	}
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// cardText is the payload encoded into the vaccination card QR code.
func cardText(card *domain.VaccinationCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Child: %s\n", card.ChildName)
	fmt.Fprintf(&b, "Vaccinations: %d/%d (%d%%)\n", card.Progress.Completed, card.Progress.Total, card.Progress.Percentage)
	if card.NextDue != nil {
		fmt.Fprintf(&b, "Next: %s %s on %s", card.NextDue.VaccineName, card.NextDue.Dose, card.NextDue.ScheduledDate)
	} else {
		b.WriteString("Next: none")
	}
	return b.String()
}

func vaccinationCardPNG(card *domain.VaccinationCard) ([]byte, error) {
	png, err := qrcode.Encode(cardText(card), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
