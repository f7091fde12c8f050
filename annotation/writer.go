package annotation

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// WriteFile serializes the session and writes it to path. The document is
// staged in a temporary file in the destination directory and renamed into
// place, so a failure at any point leaves no partial annotation file behind.
func WriteFile(s *Session, path string) (err error) {
	data, err := Serialize(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".annotations-*.xml")
	if err != nil {
		return errors.Wrapf(err, "cannot stage annotation file for %q", path)
	}
	defer func() {
		if err != nil {
			utils.UncheckedErrorFunc(func() error { return os.Remove(tmp.Name()) })
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		utils.UncheckedErrorFunc(tmp.Close)
		return errors.Wrapf(err, "cannot write annotation file %q", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "cannot write annotation file %q", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "cannot move annotation file into place at %q", path)
	}
	return nil
}
