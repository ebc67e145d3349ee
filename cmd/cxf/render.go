package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-cxf/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// validationRow is one line of `cxf validate` output.
type validationRow struct {
	Name     string
	Accounts int
	Items    int
	Skipped  int
	Dangling int
	Err      error
}

func renderValidation(w io.Writer, rows []validationRow) {
	t := newTable("document", "accounts", "items", "skipped", "dangling", "status")
	for _, r := range rows {
		status := okStyle.Render("ok")
		switch {
		case r.Err != nil:
			status = errorStyle.Render(r.Err.Error())
		case r.Skipped > 0 || r.Dangling > 0:
			status = warnStyle.Render("warnings")
		}
		t.Row(r.Name, strconv.Itoa(r.Accounts), strconv.Itoa(r.Items),
			strconv.Itoa(r.Skipped), strconv.Itoa(r.Dangling), status)
	}
	fmt.Fprintln(w, t.String())
}

func renderImportReport(w io.Writer, name string, report models.ImportReport) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Imported %s", name)))
	fmt.Fprintln(w, helpStyle.Render(fmt.Sprintf("exporter %s, format %s", report.Exporter, report.Version)))

	t := newTable("accounts", "items", "credentials", "unknown credentials", "dangling links").
		Row(strconv.Itoa(report.Accounts), strconv.Itoa(report.Items), strconv.Itoa(report.Credentials),
			strconv.Itoa(report.UnknownCredentials), strconv.Itoa(report.DanglingLinks))
	fmt.Fprintln(w, t.String())

	for _, skipped := range report.Skipped {
		fmt.Fprintln(w, warnStyle.Render("skipped: "+skipped.Error()))
	}
}

func renderImportTotal(w io.Writer, documents int, total models.ImportReport) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Imported %d documents", documents)))
	t := newTable("accounts", "items", "credentials", "skipped items").
		Row(strconv.Itoa(total.Accounts), strconv.Itoa(total.Items), strconv.Itoa(total.Credentials),
			strconv.Itoa(len(total.Skipped)))
	fmt.Fprintln(w, t.String())
}

func renderAccounts(w io.Writer, accounts []models.Account) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, helpStyle.Render("No accounts stored."))
		return
	}
	t := newTable("id", "username", "email", "full name")
	for _, acc := range accounts {
		t.Row(acc.ID.String(), acc.Username, acc.Email, acc.FullName)
	}
	fmt.Fprintln(w, t.String())
}

func renderStats(w io.Writer, counts map[models.CredentialType]int) {
	if len(counts) == 0 {
		fmt.Fprintln(w, helpStyle.Render("No credentials stored."))
		return
	}

	types := make([]models.CredentialType, 0, len(counts))
	total := 0
	for typ, n := range counts {
		types = append(types, typ)
		total += n
	}
	slices.Sort(types)

	t := newTable("type", "count")
	for _, typ := range types {
		name := string(typ)
		if !typ.IsKnown() {
			name = warnStyle.Render(name + " (unknown)")
		}
		t.Row(name, strconv.Itoa(counts[typ]))
	}
	t.Row(titleStyle.Render("total"), strconv.Itoa(total))
	fmt.Fprintln(w, t.String())
}
