package export

import (
	"bytes"
	"encoding/csv"
)

// renderCSV ghi bảng theo RFC 4180: ô chứa dấu phẩy, dấu nháy hoặc xuống dòng được bọc nháy kép
func renderCSV(t Table, _ Request) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	for _, row := range t.Cells {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
