// Package report generates the PDF document for a completed VAT check using
// maroto/v2. The document carries the check metadata, the parsed details and
// a pretty-printed transcript of the SOAP exchange.
package report

import (
	"fmt"
	"strings"
	"time"

	"vies_backend/internal/vies"
	"vies_backend/platform/xmlfmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// LogWrapWidth is the column at which transcript lines are wrapped so long
// SOAP lines stay inside the page at the reduced monospace size.
const LogWrapWidth = 80

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorGreen     = &props.Color{Red: 22, Green: 163, Blue: 74}   // green-600
	colorRed       = &props.Color{Red: 220, Green: 38, Blue: 38}   // red-600
)

// CheckData holds everything needed to render one check report.
type CheckData struct {
	CheckedAt   time.Time
	CountryCode string
	VatNumber   string
	Result      vies.CheckResult
	Transcript  vies.Transcript
}

// Render produces the complete report as PDF bytes. It performs no network or
// disk access; persistence is the caller's concern.
func Render(data CheckData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(buildTitle())
	m.AddRows(row.New(6))
	m.AddRows(buildMetadata(data)...)
	m.AddRows(buildDetails(data.Result)...)
	m.AddRows(row.New(6))
	m.AddRows(buildCommunicationLog(data.Transcript)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func buildTitle() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("VIES VAT Number Check Report", props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: colorPrimary,
			}),
		),
	)
}

func buildMetadata(data CheckData) []core.Row {
	status := "Not active"
	statusColor := colorRed
	if data.Result.Valid {
		status = "Active"
		statusColor = colorGreen
	}

	labelStyle := props.Text{Size: 10, Color: colorSecondary}
	valueStyle := props.Text{Size: 10, Color: colorPrimary}

	metaRow := func(label, value string, valueColor *props.Color) core.Row {
		style := valueStyle
		if valueColor != nil {
			style.Color = valueColor
			style.Style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(3).Add(text.New(label, labelStyle)),
			col.New(9).Add(text.New(value, style)),
		)
	}

	return []core.Row{
		metaRow("Check date:", data.CheckedAt.Format("2006-01-02 15:04:05"), nil),
		metaRow("Country:", data.CountryCode, nil),
		metaRow("VAT number:", data.VatNumber, nil),
		metaRow("Status:", status, statusColor),
	}
}

// buildDetails renders one line per non-empty line of the parsed status
// message (name/address).
func buildDetails(result vies.CheckResult) []core.Row {
	var rows []core.Row
	for _, line := range strings.Split(result.StatusMessage, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == vies.MsgActive || line == vies.MsgNotActive {
			continue
		}
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New(line, props.Text{Size: 10, Color: colorPrimary})),
		))
	}
	return rows
}

func buildCommunicationLog(transcript vies.Transcript) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			col.New(12).Add(text.New("API Communication Log", props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Color: colorPrimary,
			})),
		),
	}

	rows = append(rows, buildLogSection("Request:", transcript.RequestXML)...)
	rows = append(rows, row.New(3))
	rows = append(rows, buildLogSection("Response:", transcript.ResponseXML)...)

	return rows
}

func buildLogSection(label, xmlText string) []core.Row {
	rows := []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New(label, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Color: colorSecondary,
			})),
		),
	}

	if strings.TrimSpace(xmlText) == "" {
		rows = append(rows, logLine("(empty)"))
		return rows
	}

	for _, line := range strings.Split(xmlfmt.Pretty(xmlText), "\n") {
		for _, wrapped := range WrapLine(line, LogWrapWidth) {
			rows = append(rows, logLine(wrapped))
		}
	}

	return rows
}

func logLine(line string) core.Row {
	return row.New(3.5).Add(
		col.New(12).Add(text.New(line, props.Text{
			Size:   7,
			Family: fontfamily.Courier,
			Color:  colorPrimary,
		})),
	)
}

// WrapLine breaks a line at the given width, preferring the nearest space
// before the limit. Lines without a usable space are broken hard.
func WrapLine(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}

	var out []string
	for len(line) > width {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		cut := strings.LastIndexByte(line[:width+1], ' ')
		if cut <= indent {
			cut = width
		}
		out = append(out, strings.TrimRight(line[:cut], " "))
		line = strings.TrimLeft(line[cut:], " ")
	}
	if line != "" {
		out = append(out, line)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
