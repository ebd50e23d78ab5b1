package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMaxColumns = 8
	pdfRowHeight  = 7.0
	pdfFont       = "Helvetica"
)

// pdfDefaultExclude các cột luôn bị bỏ khi xuất PDF
var pdfDefaultExclude = []string{"id", "_id", "updated_at", "updatedAt"}

// renderPDF tạo bảng PDF khổ A4 ngang: dải tiêu đề ở đầu trang đầu, tối đa 8 cột rộng bằng nhau,
// dòng xen màu, lặp lại header bảng khi sang trang.
func renderPDF(t Table, req Request) ([]byte, error) {
	t = t.Project(append(append([]string{}, pdfDefaultExclude...), req.Exclude...), pdfMaxColumns)
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("no printable columns")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)
	pdf.SetTitle(tr(req.Title), false)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Columns))

	pdf.SetFillColor(46, 125, 50)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(req.Title), "", 1, "L", true, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, 6, tr("Generated: "+req.Now.Format(DateLayout+" 15:04")), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFillColor(200, 230, 201)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "B", 9)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(h), colW-2), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 8)
	}
	header()

	for i, row := range t.Cells {
		if pdf.GetY()+pdfRowHeight > pageH-bottom {
			pdf.AddPage()
			header()
		}
		pdf.SetFillColor(245, 245, 245)
		for _, cell := range row {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(cell), colW-2), "1", 0, "L", i%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit cắt chuỗi cho vừa độ rộng ô, thêm "..." khi bị cắt
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
