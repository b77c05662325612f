package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mvandrade/loanlens/internal/domain/workflow"
)

func sampleSteps() []workflow.Step {
	return []workflow.Step{
		{Step: 1, Title: "Kick off", Type: "start", Owner: "ana", EstimatedTime: "1h"},
		{Step: 2, Title: "Review", Type: "task", Description: `Check the "final" draft`},
	}
}

func TestJSON_PrettyPrinted(t *testing.T) {
	data, err := JSON(sampleSteps())
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  {")

	var decoded []workflow.Step
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleSteps(), decoded)
}

func TestText_Report(t *testing.T) {
	got := string(Text(sampleSteps()))

	want := "Workflow Steps\n\n" +
		"1. Kick off [start]\n" +
		"   Owner: ana\n" +
		"   Time: 1h\n" +
		"\n" +
		"2. Review [task]\n" +
		"   Check the \"final\" draft\n" +
		"\n"
	assert.Equal(t, want, got)
}

func TestCSV_QuotingAndHeader(t *testing.T) {
	got := string(CSV(sampleSteps()))

	want := "Step,Title,Type,Owner,EstimatedTime,Description\n" +
		`1,"Kick off",start,"ana","1h",""` + "\n" +
		`2,"Review",task,"","","Check the ""final"" draft"` + "\n"
	assert.Equal(t, want, got)
}

func TestXLSX_RoundTrip(t *testing.T) {
	data, err := XLSX(sampleSteps())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.NotEmpty(t, sheets)

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Kick off", rows[1][1])
	assert.Equal(t, `Check the "final" draft`, rows[2][5])
}
