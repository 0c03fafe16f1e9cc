package zip

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// Entry names a file on disk and the name it takes inside the archive.
type Entry struct {
	Name string
	Path string
}

// Archive streams entries into a zip written to w. Media is already
// compressed, so entries are stored rather than deflated.
func Archive(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, entry := range entries {
		if err := addFile(zw, entry); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, entry Entry) error {
	f, err := os.Open(entry.Path)
	if err != nil {
		return fmt.Errorf("zip: open %s: %w", entry.Path, err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("zip: add %s: %w", entry.Name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("zip: copy %s: %w", entry.Name, err)
	}
	return nil
}
