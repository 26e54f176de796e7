package searchresult

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/friendsofgo/errors"
)

// HashField is the reserved field under which an item's identity hash is stored.
const HashField = "hash"

// Item is a materialized record with a content-derived identity.
// Items are immutable; accessors hand out copies.
type Item struct {
	data Record
	hash string
}

// Attribute is a single code/value pair of an item, as host grids render custom
// attributes.
type Attribute struct {
	Code  string `json:"attribute_code"`
	Value any    `json:"value"`
}

// NewItem converts one raw record into an Item.
//
// The identity hash is the hex SHA-1 of the record's canonical JSON encoding
// (keys sorted, no HTML escaping), so two records with the same fields and
// values get the same hash whatever order the fields were produced in. The hash
// is then stored under HashField, replacing any incoming value of that field.
//
// An error is only returned for values that cannot be encoded as JSON.
func NewItem(rec Record) (*Item, error) {
	data := rec.Clone()

	canonical, err := canonicalJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "encode record")
	}

	sum := sha1.Sum(canonical)
	hash := hex.EncodeToString(sum[:])
	data[HashField] = hash

	return &Item{data: data, hash: hash}, nil
}

// canonicalJSON encodes the record with sorted keys. encoding/json already sorts
// map keys; what remains is turning off HTML escaping and the trailing newline
// the encoder adds.
func canonicalJSON(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(rec)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Hash returns the identity hash.
func (i *Item) Hash() string {
	return i.hash
}

// ID returns the identity hash; hosts key grid rows by it.
func (i *Item) ID() string {
	return i.hash
}

// Get returns the value of field and whether the field is present.
func (i *Item) Get(field string) (any, bool) {
	v, ok := i.data[field]
	return v, ok
}

// Data returns a copy of all fields, including HashField.
func (i *Item) Data() Record {
	return i.data.Clone()
}

// Attributes returns the item's fields as code/value pairs sorted by code.
func (i *Item) Attributes() []Attribute {
	codes := make([]string, 0, len(i.data))
	for code := range i.data {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	attrs := make([]Attribute, len(codes))
	for n, code := range codes {
		attrs[n] = Attribute{Code: code, Value: i.data[code]}
	}
	return attrs
}

// MarshalJSON encodes the item as its flat field map.
func (i *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(i.data))
}
