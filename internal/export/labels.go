package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/slicecut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each slice label's QR code.
type LabelInfo struct {
	SliceID   string `json:"id"`
	Index     int    `json:"index"`
	Row1      int    `json:"r1"`
	Col1      int    `json:"c1"`
	Row2      int    `json:"r2"`
	Col2      int    `json:"c2"`
	Mushrooms int    `json:"mushrooms"`
	Tomatoes  int    `json:"tomatoes"`
	Valid     bool   `json:"valid"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per slice, on a
// standard 3 x 10 label sheet. With validOnly set, invalid slices get no label.
func ExportLabels(path string, result model.SolveResult, validOnly bool) error {
	labels := CollectLabelInfos(result, validOnly)
	if len(labels) == 0 {
		return ErrNoSlices
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for slice %d: %w", label.Index, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", info.Index, info.SliceID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Slice %d", info.Index), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	bounds := fmt.Sprintf("(%d,%d) to (%d,%d)", info.Row1, info.Col1, info.Row2, info.Col2)
	pdf.CellFormat(textW, 3.5, bounds, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%d mushroom, %d tomato", info.Mushrooms, info.Tomatoes), "", 1, "L", false, 0, "")

	if !info.Valid {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(180, 0, 0)
		pdf.CellFormat(textW, 3, "Below ingredient minimum", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a result, numbering
// slices from 1 in result order.
func CollectLabelInfos(result model.SolveResult, validOnly bool) []LabelInfo {
	var labels []LabelInfo
	for i, s := range result.Slices {
		if validOnly && !s.Valid {
			continue
		}
		labels = append(labels, LabelInfo{
			SliceID:   s.ID,
			Index:     i + 1,
			Row1:      s.Rect.Row,
			Col1:      s.Rect.Col,
			Row2:      s.Rect.LastRow(),
			Col2:      s.Rect.LastCol(),
			Mushrooms: s.Mushrooms,
			Tomatoes:  s.Tomatoes,
			Valid:     s.Valid,
		})
	}
	return labels
}
