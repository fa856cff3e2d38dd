package download

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// normalizeChecksum lowercases a hex digest and strips surrounding whitespace.
func normalizeChecksum(sum string) string {
	return strings.ToLower(strings.TrimSpace(sum))
}

// tempFilePath returns a unique output path under dir, derived from the
// current time.
func tempFilePath(dir string, now time.Time) string {
	name := fmt.Sprintf("afetch-%d-%s.tar.gz", now.UnixMilli(), uuid.NewString()[:8])
	return filepath.Join(dir, name)
}

// removeFile deletes path, tolerating a file that is already gone.
func removeFile(path string) error {
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// resolveLocation resolves a Location header against the URL that produced it.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}

	ref, err := url.Parse(location)
	if err != nil {
		return "", err
	}

	return base.ResolveReference(ref).String(), nil
}

// versionLabel is what a status message calls the requested version.
func versionLabel(version string) string {
	if version == "" {
		return "latest"
	}

	return version
}
