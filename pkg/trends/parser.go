package trends

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// splitTable is the gateway's table encoding: column names, row labels,
// row-major data and the name of the index.
type splitTable struct {
	Columns   []string        `json:"columns"`
	Index     []interface{}   `json:"index"`
	IndexName string          `json:"index_name"`
	Data      [][]interface{} `json:"data"`
}

type relatedEnvelope struct {
	Top    *splitTable `json:"top"`
	Rising *splitTable `json:"rising"`
}

// ParseTable decodes a split-oriented table.
func ParseTable(body []byte) (*ResultSet, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body from trends API")
	}
	var table splitTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w (response: %s)", err, preview(body))
	}
	return table.toResultSet()
}

// ParseRelated decodes a keyword → {top, rising} document. A null ranking
// decodes to a nil ResultSet.
func ParseRelated(body []byte) (map[string]RelatedResult, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body from trends API")
	}
	var raw map[string]relatedEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode related result: %w (response: %s)", err, preview(body))
	}

	out := make(map[string]RelatedResult, len(raw))
	for keyword, env := range raw {
		var rr RelatedResult
		var err error
		if env.Top != nil {
			if rr.Top, err = env.Top.toResultSet(); err != nil {
				return nil, fmt.Errorf("related %q top: %w", keyword, err)
			}
		}
		if env.Rising != nil {
			if rr.Rising, err = env.Rising.toResultSet(); err != nil {
				return nil, fmt.Errorf("related %q rising: %w", keyword, err)
			}
		}
		out[keyword] = rr
	}
	return out, nil
}

// ParseRecords decodes a JSON array of flat objects into a table whose columns
// follow the order in which keys are first seen.
func ParseRecords(body []byte) (*ResultSet, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body from trends API")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w (response: %s)", err, preview(body))
	}

	var columns []string
	seen := make(map[string]bool)
	var records []map[string]Value
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", len(records), err)
		}
		rec := make(map[string]Value)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to decode record %d: %w", len(records), err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("record %d: unexpected token %v", len(records), tok)
			}
			var raw interface{}
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", len(records), key, err)
			}
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
			rec[key] = toValue(raw)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	rs, err := NewResultSet(columns...)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = rec[col]
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs, nil
}

func (t *splitTable) toResultSet() (*ResultSet, error) {
	rs, err := NewResultSet(t.Columns...)
	if err != nil {
		return nil, err
	}
	rs.IndexName = t.IndexName
	if len(t.Index) > 0 {
		if len(t.Index) != len(t.Data) {
			return nil, fmt.Errorf("index has %d labels for %d rows", len(t.Index), len(t.Data))
		}
		rs.Index = make([]Value, len(t.Index))
		for i, label := range t.Index {
			rs.Index[i] = toValue(label)
		}
	}
	for i, raw := range t.Data {
		values := make([]Value, len(raw))
		for j, cell := range raw {
			values[j] = toValue(cell)
		}
		if err := rs.Append(values...); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return rs, nil
}

func toValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return MissingValue()
	case string:
		return StringValue(v)
	case float64:
		return NumberValue(v)
	case bool:
		return BoolValue(v)
	default:
		b, _ := json.Marshal(v)
		return StringValue(string(b))
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return fmt.Errorf("unexpected end of input, want %q", want)
	}
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("unexpected token %v, want %q", tok, want)
	}
	return nil
}

func preview(body []byte) string {
	return string(body[:min(len(body), 200)])
}
