// Package export renders a fetch session's rows as the delimited flat file
// the operator hands to spreadsheet users. The file is the only artifact the
// engine ever persists.
package export

import (
	"encoding/csv"
	"io"

	"jobradar-engine/internal/domain"
)

// Excel needs the BOM to pick UTF-8 over its locale codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns optionally prefixes every row with the client the search ran for.
type Columns struct {
	Client     string
	Occupation string
}

func (c Columns) withClient() bool { return c.Client != "" }

func WriteCSV(w io.Writer, rows []domain.JobRecord, cols Columns) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := []string{"Source", "Position Title", "Company Name", "Location", "Posted", "Application Weblink"}
	if cols.withClient() {
		header = append([]string{"Client", "Occupation"}, header...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{r.Source, r.Title, r.Company, r.Location, r.Posted, r.ApplyLink}
		if cols.withClient() {
			row = append([]string{cols.Client, cols.Occupation}, row...)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
