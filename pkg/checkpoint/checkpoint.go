// Package checkpoint keeps the issued timestamp of the last
// synchronized dataset description in a file, so recurring runs can
// skip descriptions they have seen already.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/passportware/featsync/pkg/utils/rfctime"
)

var ErrBroken = errors.New("checkpoint file is broken")

// Book records and recalls one timestamp at a file path.
type Book struct {
	path string
}

func At(path string) *Book {
	return &Book{path: path}
}

// Last returns the recorded timestamp.
//
// When nothing has been recorded yet, it returns the zero time and no
// error. A file which does not parse as an RFC3339 timestamp is
// reported as ErrBroken.
func (b *Book) Last() (time.Time, error) {
	buf, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	t, err := rfctime.ParseRFC3339DateTime(strings.TrimSpace(string(buf)))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %s", ErrBroken, b.path, err)
	}
	return t.Time(), nil
}

// Record writes t as the new checkpoint.
//
// The file is written aside and renamed into place, so readers never
// observe a half-written checkpoint.
func (b *Book) Record(t time.Time) error {
	dir := filepath.Dir(b.path)
	f, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return err
	}
	tmpname := f.Name()
	defer os.Remove(tmpname)

	if _, err := f.WriteString(rfctime.RFC3339(t).String() + "\n"); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmpname, b.path)
}
