package common

import (
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GenerateHash fingerprints the source tree under root so the image tag only
// changes when the API does. Hidden directories and those named in skip are
// left out.
func GenerateHash(root string, skip ...string) (string, error) {
	var hash string

	err := filepath.WalkDir(root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && skipDir(d.Name(), skip) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Type()&fs.ModeSymlink == 0 {
				fh, err := GetFileMd5Hash(path)
				if err != nil {
					return err
				}
				hash = AppendHash(hash, fh)
			}

			return nil
		})

	return hash, err
}

func skipDir(name string, skip []string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, s := range skip {
		if name == s {
			return true
		}
	}
	return false
}

func GetFileMd5Hash(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}

	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func AppendHash(hash1, hash2 string) string {
	h := md5.New()
	io.WriteString(h, hash1+hash2)

	return fmt.Sprintf("%x", h.Sum(nil))
}
