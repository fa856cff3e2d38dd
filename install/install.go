// Package install locates binaries that are already present on disk so a
// download can be skipped.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// Dir finds binaries laid out as <Root>/<version>/bin/<Binary>.
type Dir struct {
	Root   string
	Binary string
}

// Lookup returns the path of the installed binary for version. An empty
// version resolves to the highest installed version.
func (d Dir) Lookup(version string) (string, bool) {
	if version == "" {
		latest, ok := d.Latest()
		if !ok {
			return "", false
		}
		version = latest
	}

	path := d.BinaryPath(version)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	return path, true
}

// BinaryPath is where the binary for version lives, installed or not.
func (d Dir) BinaryPath(version string) string {
	name := d.Binary
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}

	return filepath.Join(d.Root, version, "bin", name)
}

// Versions lists installed versions, highest first. Directories whose
// name is not a semantic version are ignored.
func (d Dir) Versions() ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading install dir: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() || !semver.IsValid(canonical(entry.Name())) {
			continue
		}
		versions = append(versions, entry.Name())
	}

	slices.SortFunc(versions, func(a, b string) int {
		return semver.Compare(canonical(b), canonical(a))
	})

	return versions, nil
}

// Latest returns the highest installed version that has a binary.
func (d Dir) Latest() (string, bool) {
	versions, err := d.Versions()
	if err != nil {
		return "", false
	}

	for _, v := range versions {
		if _, ok := d.Lookup(v); ok {
			return v, true
		}
	}

	return "", false
}

// canonical adds the "v" prefix that semver expects.
func canonical(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}

	return "v" + version
}
