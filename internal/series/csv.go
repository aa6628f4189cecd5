package series

import (
	"bytes"
	"fmt"
	"os"

	"MarketPress/internal/parse"
)

// Load reads a persisted date,value CSV into a table. A missing file yields
// an empty table so a first run starts from nothing.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("read series %s: %w", path, err)
	}
	obs, err := parse.DateValueCSV(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse series %s: %w", path, err)
	}
	t := NewTable()
	t.Merge(obs)
	return t, nil
}

// EncodeCSV renders the table as a date,value CSV sorted ascending, with a
// trailing newline.
func EncodeCSV(t *Table) []byte {
	var buf bytes.Buffer
	buf.WriteString("date,value\n")
	for _, o := range t.Observations() {
		buf.WriteString(o.Date)
		buf.WriteByte(',')
		buf.WriteString(o.Value.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
