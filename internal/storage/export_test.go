package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInquiriesWorkbook(t *testing.T) {
	preferred := time.Date(2026, 11, 21, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	f, err := BuildInquiriesWorkbook([]Inquiry{
		{
			ID: 7, Reference: "ref-1", Name: "Jane Citizen", Email: "jane@example.com",
			Phone: "+61412345678", ServiceInterest: "family", PreferredDate: &preferred,
			Message: "Autumn shoot", Status: StatusSent, CreatedAt: created,
		},
		{
			ID: 8, Reference: "ref-2", Name: "Sam", Email: "sam@example.com",
			Phone: "+61400000000", Message: "Canvas", Status: StatusFailed, CreatedAt: created,
		},
	})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{inquiriesSheet}, f.GetSheetList())

	rows, err := f.GetRows(inquiriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, inquiryHeaders, rows[0])
	assert.Equal(t, []string{
		"7", "ref-1", "Jane Citizen", "jane@example.com", "+61412345678", "family",
		"2026-11-21", "Autumn shoot", "sent", "2026-10-01 09:30",
	}, rows[1])

	date, err := f.GetCellValue(inquiriesSheet, "G3")
	require.NoError(t, err)
	assert.Empty(t, date)

	status, err := f.GetCellValue(inquiriesSheet, "I3")
	require.NoError(t, err)
	assert.Equal(t, "failed", status)
}

func TestBuildInquiriesWorkbook_Empty(t *testing.T) {
	f, err := BuildInquiriesWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(inquiriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Created At", rows[0][len(rows[0])-1])
}
