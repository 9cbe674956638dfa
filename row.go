package tabular

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
)

// Attachment is an opaque binary payload carried beside a row's JSON fields.
type Attachment struct {
	Data          []byte `json:"data" yaml:"data"`
	MimeType      string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	FileName      string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	FileExtension string `json:"fileExtension,omitempty" yaml:"fileExtension,omitempty"`
}

// Binary maps attachment names to payloads.
type Binary map[string]Attachment

// clone copies the map so derived rows never share it with their source.
// Payload bytes are shared; they are never modified.
func (b Binary) clone() Binary {
	if len(b) == 0 {
		return nil
	}
	return maps.Clone(b)
}

// Row is one record of a [Table].
type Row struct {
	JSON   *Object `json:"json" yaml:"json"`
	Binary Binary  `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// NewRow returns a row holding fields and no attachments.
func NewRow(fields *Object) Row {
	if fields == nil {
		fields = NewObject()
	}
	return Row{JSON: fields}
}

// Get returns the value of field key and whether the row has it.
func (r Row) Get(key string) (Value, bool) { return r.JSON.Get(key) }

// Table is an ordered sequence of rows.
type Table []Row

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// Records returns the JSON mapping of every row.
func (t Table) Records() []*Object {
	out := make([]*Object, len(t))
	for i, r := range t {
		out[i] = r.JSON
		if out[i] == nil {
			out[i] = NewObject()
		}
	}
	return out
}

// DecodeRecords reads a JSON array of objects. Each object becomes one row.
func DecodeRecords(r io.Reader) (Table, error) {
	var vals []Value
	if err := decodeArray(r, &vals); err != nil {
		return nil, err
	}
	t := make(Table, len(vals))
	for i, v := range vals {
		if v.Kind() != KindObject {
			return nil, fmt.Errorf("record %d: %w", i, errNotObject(v))
		}
		t[i] = NewRow(v.Object())
	}
	return t, nil
}

// DecodeItems reads a JSON array of {"json": {...}, "binary": {...}} items.
func DecodeItems(r io.Reader) (Table, error) {
	var t Table
	if err := decodeArray(r, &t); err != nil {
		return nil, err
	}
	for i := range t {
		if t[i].JSON == nil {
			t[i].JSON = NewObject()
		}
	}
	return t, nil
}

func decodeArray(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	return nil
}

// TableOf builds a table from records.
func TableOf(records ...*Object) Table {
	t := make(Table, len(records))
	for i, rec := range records {
		t[i] = NewRow(rec)
	}
	return t
}
