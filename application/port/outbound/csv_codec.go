package outbound

import (
	"io"

	"github.com/terrapoint/terrapoint/domain"
)

// CSVCodec encodes record listings to CSV and decodes uploaded CSV files
// back into documents. Implemented by infrastructure/service/csvio.
type CSVCodec interface {
	Write(w io.Writer, records []domain.Fields) error
	Read(r io.Reader) ([]domain.Fields, error)
}
