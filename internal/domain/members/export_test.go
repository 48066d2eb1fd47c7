package members

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMember() WithPlan {
	return WithPlan{Member: Member{
		ID:               "m-1",
		MemberType:       TypeDealer,
		Name:             "Budi Santoso",
		Email:            "budi@example.com",
		AhassNumber:      "AH-0042",
		DealerCode:       "D-77",
		DealerName:       `O"Brien Motors`,
		DealerCity:       "Surabaya",
		PICPhoneNumber:   "081234567890",
		MembershipPlanID: "quarterly",
		ActiveUntil:      time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		Status:           StatusActive,
		JoinedAt:         time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC),
	}}
}

func TestRenderCSVEscapesEmbeddedQuotes(t *testing.T) {
	out := RenderCSV([]WithPlan{sampleMember()})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		`"ID","Nama Member","Email","Tipe","No AHASS","Kode Dealer","Nama Dealer","Kota","No HP PIC","Paket","Berlaku Hingga","Status","Tanggal Bergabung"`,
		lines[0])
	assert.Contains(t, lines[1], `"O""Brien Motors"`)
	assert.Equal(t,
		`"m-1","Budi Santoso","budi@example.com","dealer","AH-0042","D-77","O""Brien Motors","Surabaya","081234567890","quarterly","2025-06-01","active","2025-03-01"`,
		lines[1])
}

func TestRenderCSVEmpty(t *testing.T) {
	out := RenderCSV(nil)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, `"ID",`))
}

func TestRenderXLSX(t *testing.T) {
	f, err := RenderXLSX([]WithPlan{sampleMember()})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	got, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Nama Member", got)

	got, err = f.GetCellValue(sheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, `O"Brien Motors`, got)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 500, TotalPages(10000, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}
