package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/cafe"
)

// Table is a report flattened to a header and rows, shared by CSV and XLSX
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// WeekTable flattens the week-grid report, one line per slot plus the weekly sum
func WeekTable(r cafe.WeekReport) Table {
	t := Table{
		Sheet:  "Semana",
		Header: []string{"Dia", "Período", "Total", cafe.Upper.Label(), cafe.Lower.Label()},
	}
	for _, s := range r.Slots {
		t.Rows = append(t.Rows, []any{string(s.Day), string(s.Period), s.Total, s.Upper, s.Lower})
	}
	t.Rows = append(t.Rows, []any{"Semana", "", r.Week.Total, r.Week.Upper, r.Week.Lower})
	return t
}

// DailyTable flattens the dashboard report, one line per day plus the weekly sum
func DailyTable(r cafe.DailyReport) Table {
	t := Table{
		Sheet: "Relatório diário",
		Header: []string{
			"Dia",
			"Café da manhã", "Manhã " + cafe.Upper.Label(), "Manhã " + cafe.Lower.Label(),
			"Café da tarde", "Tarde " + cafe.Upper.Label(), "Tarde " + cafe.Lower.Label(),
			"Total",
		},
	}

	var breakfast, afternoon cafe.Totals
	for _, d := range r.Days {
		t.Rows = append(t.Rows, []any{
			d.Day.LongName(),
			d.Breakfast.Total, d.Breakfast.Upper, d.Breakfast.Lower,
			d.Afternoon.Total, d.Afternoon.Upper, d.Afternoon.Lower,
			d.Total,
		})
		breakfast.Total += d.Breakfast.Total
		breakfast.Upper += d.Breakfast.Upper
		breakfast.Lower += d.Breakfast.Lower
		afternoon.Total += d.Afternoon.Total
		afternoon.Upper += d.Afternoon.Upper
		afternoon.Lower += d.Afternoon.Lower
	}
	t.Rows = append(t.Rows, []any{
		"Semana",
		breakfast.Total, breakfast.Upper, breakfast.Lower,
		afternoon.Total, afternoon.Upper, afternoon.Lower,
		r.Week.Total,
	})
	return t
}

// WriteCSV writes the table as comma-separated values
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table as a single-sheet workbook with a bold header
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(t.Sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(t.Sheet, "A", last, 18); err != nil {
		return err
	}

	return f.Write(w)
}

// HandleDownload exports a report as a file attachment.
// Query params: report (week|daily), format (csv|json|xlsx)
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	report := r.URL.Query().Get("report")
	if report == "" {
		report = ReportWeek
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatCSV
	}

	var data any
	var table Table
	var filename string
	switch report {
	case ReportWeek:
		wr := s.state.WeekReport()
		data, table, filename = wr, WeekTable(wr), ExportPrefix+"_semana"
	case ReportDaily:
		dr := s.state.DailyReport()
		data, table, filename = dr, DailyTable(dr), ExportPrefix+"_diario"
	default:
		http.Error(w, ErrInvalidReport, http.StatusBadRequest)
		return
	}

	var contentType string
	var write func(io.Writer) error
	switch format {
	case FormatCSV:
		contentType = "text/csv; charset=utf-8"
		write = func(out io.Writer) error { return WriteCSV(out, table) }
	case FormatJSON:
		contentType = "application/json; charset=utf-8"
		write = func(out io.Writer) error { return json.NewEncoder(out).Encode(data) }
	case FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		write = func(out io.Writer) error { return WriteXLSX(out, table) }
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		s.log.Error("Error generating export",
			zap.String("report", report),
			zap.String("format", format),
			zap.Error(err),
		)
		http.Error(w, ErrFailedToGenerate, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", filename, format))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Error("Error writing export", zap.Error(err))
	}
}
