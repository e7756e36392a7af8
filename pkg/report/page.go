package report

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/hamishcoleman/dsl-accounts/pkg/grid"
	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// PageData carries the macro values substituted into the HTML balance
// page template.
type PageData struct {
	Grid        string
	Balance     string
	NextRentDue string
}

// Page renders the HTML balance page by substituting the grid, the
// current balance, and the next rent due date into the template file.
func Page(templatePath string, rs *ledger.RowSet, now time.Time) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse page template: %w", err)
	}

	g, err := grid.Accumulate(rs, now)
	if err != nil {
		return "", err
	}

	nextDue, err := nextRentDue(rs, now)
	if err != nil {
		return "", err
	}

	data := PageData{
		Grid:        g.Render(),
		Balance:     rs.Value().String(),
		NextRentDue: nextDue,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render page template: %w", err)
	}
	return sb.String(), nil
}

// nextRentDue reports the month after the most recent settled rent
// payment, or "Unknown" when no rent has ever been paid.
func nextRentDue(rs *ledger.RowSet, now time.Time) (string, error) {
	rent, err := rs.Filter(now, "hashtag==rent", "direction==outgoing", "isforecast==false")
	if err != nil {
		return "", err
	}

	last, ok := rent.Last()
	if !ok {
		return "Unknown", nil
	}
	paid := last.Date
	next := time.Date(paid.Year(), paid.Month(), 1, 0, 0, 0, 0, paid.Location()).AddDate(0, 1, 0)
	return next.Format(ledger.MonthFormat), nil
}

// WritePage renders the page and writes it to the given path.
func WritePage(path, templatePath string, rs *ledger.RowSet, now time.Time) error {
	page, err := Page(templatePath, rs, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}
