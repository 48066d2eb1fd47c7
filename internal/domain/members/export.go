package members

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column layout shared by the CSV and XLSX exports. Headers are the
// Indonesian labels the admin frontend expects.
var exportHeaders = []string{
	"ID",
	"Nama Member",
	"Email",
	"Tipe",
	"No AHASS",
	"Kode Dealer",
	"Nama Dealer",
	"Kota",
	"No HP PIC",
	"Paket",
	"Berlaku Hingga",
	"Status",
	"Tanggal Bergabung",
}

func exportRow(m WithPlan) []string {
	return []string{
		m.ID,
		m.Name,
		m.Email,
		string(m.MemberType),
		m.AhassNumber,
		m.DealerCode,
		m.DealerName,
		m.DealerCity,
		m.PICPhoneNumber,
		m.MembershipPlanID,
		m.ActiveUntil.Format("2006-01-02"),
		string(m.Status),
		m.JoinedAt.Format("2006-01-02"),
	}
}

// RenderCSV emits one quoted row per member. Every field is quoted and
// embedded quotes are doubled, regardless of content.
func RenderCSV(data []WithPlan) string {
	var b strings.Builder
	writeCSVRow(&b, exportHeaders)
	for _, m := range data {
		writeCSVRow(&b, exportRow(m))
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// RenderXLSX builds a single-sheet workbook with the same columns as the CSV.
func RenderXLSX(data []WithPlan) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, m := range data {
		fields := exportRow(m)
		row := make([]interface{}, len(fields))
		for j, v := range fields {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}
