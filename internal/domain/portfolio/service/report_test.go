package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTableXLSX_RoundTrip(t *testing.T) {
	a := analyze(t,
		"C1,Acme,Portugal,EUR,1000,0,2024-01-01,",
		"C2,Beta,Spain,EUR,500,100,,",
	)

	data, err := TableXLSX(a)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, TableHeader, rows[0])
	// Rows follow ranking order: the overdue high-risk client first.
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "High", rows[1][7])
	assert.Equal(t, "74", rows[1][6])
	assert.Equal(t, "Beta", rows[2][0])
	assert.Equal(t, "€400", rows[2][4])
}
