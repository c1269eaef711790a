// Package pdf renders printable invoices.
package pdf

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/diewo77/autoparts/i18n"
	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/services"
	"github.com/johnfercher/maroto/v2"
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
)

const margin = 15

var (
	secondaryColor = &props.Color{Red: 85, Green: 85, Blue: 85}
	headerFill     = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// InvoiceData is everything printed on an invoice. Totals must already be
// computed; the renderer does no arithmetic besides line totals.
type InvoiceData struct {
	Lang     string
	Invoice  models.Invoice
	Customer models.Customer
	Settings models.AppSettings
	Totals   services.Totals
}

// FileName returns the download name, e.g. "Facture-FACT-2024-0001.pdf".
func FileName(lang, number string) string {
	return i18n.T(lang, "pdf.invoiceFileName") + "-" + number + ".pdf"
}

// layout mirrors alignment and column order for right-to-left languages.
type layout struct {
	lang   string
	rtl    bool
	places int32
}

func (l layout) t(key string) string { return i18n.T(l.lang, key) }

func (l layout) start() align.Type {
	if l.rtl {
		return align.Right
	}
	return align.Left
}

func (l layout) end() align.Type {
	if l.rtl {
		return align.Left
	}
	return align.Right
}

// cols reverses cols for right-to-left languages.
func (l layout) cols(cols ...core.Col) []core.Col {
	if l.rtl {
		slices.Reverse(cols)
	}
	return cols
}

func (l layout) money(v float64) string {
	return services.FormatAmount(v, l.places)
}

func formatDate(lang string, t time.Time) string {
	if lang == "en" {
		return t.Format("01/02/2006")
	}
	return t.Format("02/01/2006")
}

// InvoicePDF builds the invoice document.
func InvoicePDF(d InvoiceData) ([]byte, error) {
	l := layout{lang: d.Lang, rtl: i18n.IsRTL(d.Lang), places: services.CurrencyPlaces(d.Settings.CurrencyCode)}
	company := d.Settings.Company()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(margin).
		WithTopMargin(margin).
		WithRightMargin(margin).
		Build()
	m := maroto.New(cfg)

	if err := m.RegisterFooter(
		line.NewRow(4, props.Line{Color: secondaryColor, Thickness: 0.2}),
		text.NewRow(6, l.t("pdf.footer"), props.Text{Size: 8, Style: fontstyle.Italic, Align: align.Center, Color: secondaryColor}),
	); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(text.NewRow(12, l.t("pdf.invoiceTitle"), props.Text{Size: 22, Style: fontstyle.Bold, Align: l.end()}))

	// seller block on the start side, invoice details on the end side
	details := [][2]string{
		{l.t("pdf.invoiceNumberLabel") + ":", d.Invoice.InvoiceNumber},
		{l.t("pdf.invoiceDateLabel") + ":", formatDate(l.lang, d.Invoice.Date)},
	}
	if d.Invoice.DueDate != nil {
		details = append(details, [2]string{l.t("pdf.dueDateLabel") + ":", formatDate(l.lang, *d.Invoice.DueDate)})
	}
	seller := []string{company.Name, company.Address,
		l.t("pdf.phoneLabel") + ": " + company.Phone,
		l.t("pdf.emailLabel") + ": " + company.Email}
	if company.VatID != "" {
		seller = append(seller, l.t("pdf.vatIdLabel")+": "+company.VatID)
	}
	for i := 0; i < max(len(seller), len(details)); i++ {
		var left, label, value string
		if i < len(seller) {
			left = seller[i]
		}
		if i < len(details) {
			label, value = details[i][0], details[i][1]
		}
		m.AddRow(5, l.cols(
			text.NewCol(6, left, props.Text{Size: 10, Align: l.start()}),
			text.NewCol(3, label, props.Text{Size: 10, Style: fontstyle.Bold, Align: l.end()}),
			text.NewCol(3, value, props.Text{Size: 10, Align: l.end()}),
		)...)
	}

	m.AddRows(
		row.New(6),
		line.NewRow(2, props.Line{Color: &props.Color{Red: 204, Green: 204, Blue: 204}, Thickness: 0.2}),
		row.New(4),
		text.NewRow(6, strings.ToUpper(l.t("pdf.billToLabel")), props.Text{Size: 9, Color: secondaryColor, Align: l.start()}),
		text.NewRow(6, d.Customer.Name, props.Text{Size: 11, Style: fontstyle.Bold, Align: l.start()}),
		text.NewRow(5, d.Customer.Address, props.Text{Size: 10, Align: l.start()}),
	)
	if d.Customer.VATNumber != "" {
		m.AddRows(text.NewRow(5, l.t("pdf.customerVatLabel")+": "+d.Customer.VATNumber, props.Text{Size: 10, Align: l.start()}))
	}
	m.AddRows(row.New(8))

	m.AddRows(itemRows(l, d.Invoice.Items)...)
	m.AddRows(row.New(8))
	m.AddRows(totalRows(l, d)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice %s: %w", d.Invoice.InvoiceNumber, err)
	}
	return doc.GetBytes(), nil
}

func itemRows(l layout, items []models.InvoiceItem) []core.Row {
	head := props.Text{Size: 9, Style: fontstyle.Bold, Top: 1.5, Left: 1, Right: 1}
	headStart, headEnd, headCenter := head, head, head
	headStart.Align, headEnd.Align, headCenter.Align = l.start(), align.Right, align.Center

	rows := []core.Row{
		row.New(7).Add(l.cols(
			text.NewCol(2, l.t("pdf.table.ref"), headStart),
			text.NewCol(5, l.t("pdf.table.designation"), headStart),
			text.NewCol(2, l.t("pdf.table.unitPrice"), headEnd),
			text.NewCol(1, l.t("pdf.table.qty"), headCenter),
			text.NewCol(2, l.t("pdf.table.totalHT"), headEnd),
		)...).WithStyle(&props.Cell{BackgroundColor: headerFill}),
	}

	cell := props.Text{Size: 9, Color: secondaryColor, Top: 1.5, Left: 1, Right: 1}
	cellStart, cellEnd, cellCenter := cell, cell, cell
	cellStart.Align, cellEnd.Align, cellCenter.Align = l.start(), align.Right, align.Center
	for _, item := range items {
		rows = append(rows, row.New(7).Add(l.cols(
			text.NewCol(2, item.PartSKU, cellStart),
			text.NewCol(5, item.Description, cellStart),
			text.NewCol(2, l.money(item.UnitPrice), cellEnd),
			text.NewCol(1, fmt.Sprintf("%d", item.Quantity), cellCenter),
			text.NewCol(2, l.money(item.LineTotal()), cellEnd),
		)...))
	}
	return rows
}

func totalRows(l layout, d InvoiceData) []core.Row {
	code := d.Settings.CurrencyCode
	vatPercent := int(math.Round(d.Settings.VATRate * 100))
	totalLine := func(label, value string, size float64, style fontstyle.Type) core.Row {
		return row.New(7).Add(l.cols(
			col.New(6),
			text.NewCol(3, label, props.Text{Size: size, Style: style, Align: l.end()}),
			text.NewCol(3, value+" "+code, props.Text{Size: size, Style: style, Align: l.end()}),
		)...)
	}
	return []core.Row{
		totalLine(l.t("pdf.totalHT"), l.money(d.Totals.Subtotal), 10, fontstyle.Normal),
		totalLine(fmt.Sprintf("%s (%d%%)", l.t("pdf.vatAmount"), vatPercent), l.money(d.Totals.TaxAmount), 10, fontstyle.Normal),
		row.New(3).Add(l.cols(col.New(6), line.NewCol(6, props.Line{Thickness: 0.3}))...),
		totalLine(l.t("pdf.totalTTC"), l.money(d.Totals.GrandTotal), 12, fontstyle.Bold),
	}
}
