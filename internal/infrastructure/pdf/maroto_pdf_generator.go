// Package pdf implementa la exportación del listado de clientes a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + app         │  Fecha + usuario             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total + conteo por estado                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Name | Branch | Period | Client | Status | Created   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
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

	appcustomer "github.com/jhoicas/customer-portal/internal/application/customer"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa customer.ListPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador; appName aparece en la cabecera.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: nonEmpty(appName, "customer-portal")}
}

// GenerateCustomerListPDF genera el PDF y devuelve sus bytes. El orden de las filas es el recibido.
func (g *MarotoPDFGenerator) GenerateCustomerListPDF(
	_ context.Context,
	customers []entity.Customer,
	meta appcustomer.ExportMeta,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Customers", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(customers))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(customers) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No customers yet.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(customers)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + app (izq) y fecha + usuario (der).
func headerRow(appName string, meta appcustomer.ExportMeta) core.Row {
	at := meta.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CUSTOMERS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generated: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("By: "+nonEmpty(meta.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow: total y conteo por estado.
func summaryRow(customers []entity.Customer) core.Row {
	counts := make(map[entity.CustomerStatus]int, len(entity.CustomerStatuses))
	for _, c := range customers {
		counts[c.Status]++
	}
	cells := []core.Col{
		col.New(3).Add(
			text.New(fmt.Sprintf("Total: %d", len(customers)), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary,
			}),
		),
	}
	for _, st := range entity.CustomerStatuses {
		cells = append(cells, col.New(3).Add(
			text.New(fmt.Sprintf("%s: %d", st, counts[st]), props.Text{Size: 9, Top: 2}),
		))
	}
	return row.New(9).Add(cells...)
}

// tableHeaderRow: cabecera de la tabla con texto blanco sobre fondo primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Name", 3),
		h("Branch", 2),
		h("Period", 2),
		h("Client", 2),
		h("Status", 1),
		h("Created", 2),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por cliente, con franjas alternas.
func tableDetailRows(customers []entity.Customer) []core.Row {
	result := make([]core.Row, 0, len(customers))
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1, Right: 1}))
	}
	for i, c := range customers {
		r := row.New(7).Add(
			cell(c.Name, 3),
			cell(c.Branch, 2),
			cell(c.Period, 2),
			cell(c.ClientName, 2),
			cell(string(c.Status), 1),
			cell(formatCreated(c.CreatedAt), 2),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Order as returned by the server. Generated from the live customer list.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCreated: el servidor manda RFC 3339; si no parsea se muestra tal cual.
// Ej: "2024-01-02T10:00:00Z" → "02/01/2024"
func formatCreated(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("02/01/2006")
	}
	return nonEmpty(s, "—")
}
