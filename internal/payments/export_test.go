package payments

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSVShape(t *testing.T) {
	summaries := []Summary{
		{EmployeeID: "EMP-001", AgentName: "Benali Karim",
			ProjectID: "01HXP", ProjectName: "Chantier Nord", ProjectCode: "CN-01",
			TotalDays: 2, TotalHours: dec("16"), TotalAmount: dec("4000")},
		{EmployeeID: "EMP-002", AgentName: "Meziane Lila",
			ProjectID: "01HXQ", ProjectName: "Chantier Sud", ProjectCode: "CS-02",
			TotalDays: 1, TotalHours: dec("8"), TotalAmount: dec("1500.5")},
	}

	data, err := buildCSV(summaries)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// header + 2 groups + separator + grand total
	require.Len(t, records, 5)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"EMP-001", "Benali Karim", "CN-01 - Chantier Nord", "2", "16", "4000.00"}, records[1])
	assert.Equal(t, "1500.50", records[2][5])
	assert.Equal(t, "Total Global", records[4][0])
	assert.Equal(t, "5500.50", records[4][5])
}

func TestBuildCSVEmptySummary(t *testing.T) {
	data, err := buildCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "0.00", records[2][5])
}
