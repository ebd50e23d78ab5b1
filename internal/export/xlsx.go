package export

import (
	"fmt"
	"strings"

	"agri_holding/internal/recordview"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheetName = "Records"
	maxSheetNameLen  = 31
)

// sheetName tên sheet hợp lệ với Excel: bỏ ký tự : \ / ? * [ ], tối đa 31 ký tự
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")

	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = strings.TrimSpace(string(runes[:maxSheetNameLen]))
	}
	if name == "" {
		return defaultSheetName
	}
	return name
}

// renderXLSX tạo workbook một sheet: dòng tiêu đề in đậm, số ghi dạng số, còn lại ghi chuỗi đã định dạng
func renderXLSX(t Table, req Request) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(req.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2E7D32"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	if n := len(t.Headers); n > 0 {
		last, err := excelize.CoordinatesToCellName(n, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return nil, err
		}
		lastCol, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
			return nil, err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, err
		}
	}

	for r, row := range t.Cells {
		for c, text := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			var value any = text
			if !IsDateField(t.Columns[c]) {
				if n, ok := recordview.Number(t.Values[r][c]); ok {
					value = n
				}
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
