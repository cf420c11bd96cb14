package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	mimeJSON = "application/json"
	mimeCSV  = "text/csv"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Negotiate picks the export format from the Accept header, falling back to
// JSON. The explicit format query parameter, when present, wins over Accept.
func Negotiate(accept string, formatParam string) Format {
	switch strings.ToLower(formatParam) {
	case "csv":
		return FormatCSV
	case "xlsx", "excel":
		return FormatXLSX
	case "json":
		return FormatJSON
	}

	accept = strings.ToLower(accept)
	switch {
	case strings.Contains(accept, mimeCSV):
		return FormatCSV
	case strings.Contains(accept, mimeXLSX), strings.Contains(accept, "spreadsheet"):
		return FormatXLSX
	default:
		return FormatJSON
	}
}

func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return mimeCSV
	case FormatXLSX:
		return mimeXLSX
	default:
		return mimeJSON
	}
}

// Render converts the upstream JSON rows into the negotiated format. JSON
// passes through untouched; CSV and XLSX are tabulated with a sorted header
// union so column order is deterministic whatever the row shapes are.
func Render(rows json.RawMessage, format Format) ([]byte, error) {
	if format == FormatJSON {
		return rows, nil
	}

	headers, records, err := tabulate(rows)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return renderCSV(headers, records)
	case FormatXLSX:
		return renderXLSX(headers, records)
	default:
		return rows, nil
	}
}

func tabulate(rows json.RawMessage) ([]string, [][]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(rows))
	decoder.UseNumber()

	var parsed []map[string]any
	if err := decoder.Decode(&parsed); err != nil {
		return nil, nil, fmt.Errorf("export rows are not a list: %w", err)
	}

	headerSet := make(map[string]struct{})
	for _, row := range parsed {
		for key := range row {
			headerSet[key] = struct{}{}
		}
	}
	headers := make([]string, 0, len(headerSet))
	for key := range headerSet {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	records := make([][]string, 0, len(parsed))
	for _, row := range parsed {
		record := make([]string, len(headers))
		for i, key := range headers {
			record[i] = cellValue(row[key])
		}
		records = append(records, record)
	}
	return headers, records, nil
}

func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

func renderCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(headers []string, records [][]string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Sheet1"

	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := file.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, record := range records {
		cells := make([]any, len(record))
		for j, value := range record {
			cells[j] = value
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
