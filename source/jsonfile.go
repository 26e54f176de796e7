package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/friendsofgo/errors"

	"github.com/nrfta/searchresult-go"
)

// JSONFile stores each record set as <dir>/<identifier>.json.
type JSONFile struct {
	dir string
}

var _ Store = (*JSONFile)(nil)

// NewJSONFile returns a store rooted at dir. The directory is created on the
// first write.
func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{dir: dir}
}

// Path returns the file that holds identifier.
func (f *JSONFile) Path(identifier string) string {
	return filepath.Join(f.dir, identifier+".json")
}

// Read loads the record set of identifier. A missing file is an empty set.
func (f *JSONFile) Read(ctx context.Context, identifier string) ([]searchresult.Record, error) {
	if err := checkFileIdentifier(identifier); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path(identifier))
	if os.IsNotExist(err) {
		return []searchresult.Record{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", identifier)
	}

	records, err := DecodeRecords(data)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", identifier)
	}
	return records, nil
}

// Write replaces the file of identifier. The new content is written to a
// temporary file first and renamed into place.
func (f *JSONFile) Write(ctx context.Context, identifier string, records []searchresult.Record) error {
	if err := checkFileIdentifier(identifier); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	if err := ensureDir(f.dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, identifier+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "write %s", identifier)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", identifier)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", identifier)
	}

	if err := os.Rename(tmp.Name(), f.Path(identifier)); err != nil {
		return errors.Wrapf(err, "write %s", identifier)
	}
	return nil
}

// checkFileIdentifier rejects identifiers that would escape the store directory.
func checkFileIdentifier(identifier string) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if strings.ContainsAny(identifier, `/\`) || identifier == "." || identifier == ".." {
		return errors.Errorf("invalid identifier %q", identifier)
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create store directory")
	}
	return nil
}
