// Package source provides RecordSource implementations backing search result
// collections.
//
// Every source also implements Writer, the producer side: whatever diagnoses the
// problem records stores the complete set for an identifier in one call, and a
// collection later reads it back in one call. Reading an identifier that was
// never written yields an empty set.
package source

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/friendsofgo/errors"

	"github.com/nrfta/searchresult-go"
)

// Writer stores the complete record set of an identifier, replacing any
// previous set.
type Writer interface {
	Write(ctx context.Context, identifier string, records []searchresult.Record) error
}

// Store is a RecordSource that can also be written to.
type Store interface {
	searchresult.RecordSource
	Writer
}

// ErrEmptyIdentifier is returned by writers when no identifier is given.
var ErrEmptyIdentifier = errors.New("identifier is required")

// ErrReadOnly is returned when writing through a source that cannot store records.
var ErrReadOnly = errors.New("record source is read-only")

// encodeRecords serializes a record set as a JSON array.
func encodeRecords(records []searchresult.Record) ([]byte, error) {
	if records == nil {
		records = []searchresult.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(err, "encode records")
	}
	return data, nil
}

// DecodeRecords parses a JSON array of flat objects. Numbers are kept as
// json.Number so integers survive the round trip without float rounding.
// Empty input is an empty set.
func DecodeRecords(data []byte) ([]searchresult.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []searchresult.Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []searchresult.Record
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decode records")
	}
	if records == nil {
		records = []searchresult.Record{}
	}
	return records, nil
}

func cloneRecords(records []searchresult.Record) []searchresult.Record {
	out := make([]searchresult.Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}
