// Package pdf renders the leads report export: one table row per lead under
// the caller's active filters, in the same order as the JSON listing.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ leads.ReportGenerator = (*LeadsReportGenerator)(nil)

// LeadsReportGenerator implements leads.ReportGenerator using Maroto v2.
type LeadsReportGenerator struct{}

// NewLeadsReportGenerator builds the generator.
func NewLeadsReportGenerator() *LeadsReportGenerator {
	return &LeadsReportGenerator{}
}

// GenerateLeadsReport renders the report and returns its bytes.
func (g *LeadsReportGenerator) GenerateLeadsReport(_ context.Context, ownerName string, items []*entity.Lead, total int) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Leads report", true).
		WithAuthor(ownerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ownerName, len(items), total))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, l := range items {
		m.AddRows(leadRow(l))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(ownerName string, shown, total int) core.Row {
	subtitle := fmt.Sprintf("%d of %d matching leads, %s", shown, total,
		time.Now().Format("2006-01-02 15:04"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Leads report", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(ownerName, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(subtitle, props.Text{Size: 8, Top: 2, Align: align.Right, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(width int, label string, a align.Type) core.Col {
		return col.New(width).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: a,
		}))
	}
	return row.New(6).Add(
		header(3, "Name", align.Left),
		header(3, "Email", align.Left),
		header(2, "Company", align.Left),
		header(1, "Status", align.Left),
		header(1, "Score", align.Right),
		header(2, "Value", align.Right),
	)
}

func leadRow(l *entity.Lead) core.Row {
	cell := func(width int, value string, a align.Type) core.Col {
		return col.New(width).Add(text.New(value, props.Text{Size: 8, Align: a}))
	}
	return row.New(5).Add(
		cell(3, l.FirstName+" "+l.LastName, align.Left),
		cell(3, l.Email, align.Left),
		cell(2, l.Company, align.Left),
		cell(1, string(l.Status), align.Left),
		cell(1, fmt.Sprintf("%d", l.Score), align.Right),
		cell(2, l.LeadValue.StringFixed(2), align.Right),
	)
}
