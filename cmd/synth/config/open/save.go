package open

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hectane/go-acl"
)

var ErrCannotCreate = errors.New("cannot create file")
var ErrCannotUpdate = errors.New("cannot update file")

// SaveSecret writes content to path, readable only by the current user.
//
// The previous content is kept at path + ".backup" while writing,
// and the backup is removed after the new content is written.
// When writing fails halfway, the backup stays to be recovered by hand.
//
// A file with loose permissions is tightened to 0600.
func SaveSecret(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, os.FileMode(0600))
	if err == nil {
		if err := acl.Chmod(path, os.FileMode(0600)); err != nil {
			f.Close()
			return err
		}
	} else if os.IsPermission(err) {
		return fmt.Errorf("%w, because no permission to write file at %s", ErrCannotUpdate, path)
	} else if os.IsNotExist(err) {
		_f, err := NewSafeFile(path)
		if err != nil {
			return fmt.Errorf("%w at %s: %w", ErrCannotCreate, path, err)
		}
		f = _f
	} else {
		return err
	}
	defer f.Close()

	bkpath := path + ".backup"
	bk, err := NewSafeFile(bkpath)
	if err != nil {
		return err
	}
	defer bk.Close()
	if _, err := io.Copy(bk, f); err != nil {
		os.Remove(bkpath)
		return err
	}

	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		return err
	}

	return os.Remove(bkpath)
}
