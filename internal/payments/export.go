package payments

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var csvHeader = []string{"Matricule", "Agent", "Projet", "Jours", "Heures", "Montant Total (DA)"}

// buildCSV renders the summary table the way the reporting screen
// exports it: one row per group, a blank line, then the grand total.
func buildCSV(summaries []Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		row := []string{
			s.EmployeeID,
			s.AgentName,
			fmt.Sprintf("%s - %s", s.ProjectCode, s.ProjectName),
			fmt.Sprintf("%d", s.TotalDays),
			s.TotalHours.String(),
			s.TotalAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if err := w.Write(make([]string, len(csvHeader))); err != nil {
		return nil, err
	}
	total := GrandTotal(summaries)
	if err := w.Write([]string{"Total Global", "", "", "", "", total.StringFixed(2)}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var frPrinter = message.NewPrinter(language.French)

// displayAmount formats an amount for the dashboard cards, French
// digit grouping plus the currency literal.
func displayAmount(d decimal.Decimal) string {
	return frPrinter.Sprintf("%v DA", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}
