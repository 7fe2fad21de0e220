package csvio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// Codec reads and writes module records as CSV. The header is the union
// of the keys seen across all records, sorted, with id first when present.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

func (c *Codec) Write(w io.Writer, records []domain.Fields) error {
	header := headerFor(records)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i] = cellValue(rec[key])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *Codec) Read(r io.Reader) ([]domain.Fields, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	var records []domain.Fields
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		rec := domain.Fields{}
		for i, key := range header {
			if i >= len(row) {
				break
			}
			if row[i] == "" {
				continue
			}
			rec[key] = row[i]
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records, nil
}

func headerFor(records []domain.Fields) []string {
	seen := map[string]bool{}
	for _, rec := range records {
		for key := range rec {
			seen[key] = true
		}
	}
	header := make([]string, 0, len(seen))
	for key := range seen {
		if key == "id" {
			continue
		}
		header = append(header, key)
	}
	sort.Strings(header)
	if seen["id"] {
		header = append([]string{"id"}, header...)
	}
	return header
}

func cellValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

var _ outbound.CSVCodec = (*Codec)(nil)
