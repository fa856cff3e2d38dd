package download

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

type verdict int

const (
	verdictOK verdict = iota
	verdictRetry
	verdictChecksumMismatch
)

// verify compares what arrived with what the server declared. The byte
// count is checked first: a short transfer is retried and never reported
// as a checksum failure.
func verify(received, declared int64, computed, advertised string) verdict {
	if received != declared {
		return verdictRetry
	}

	if normalizeChecksum(computed) != normalizeChecksum(advertised) {
		return verdictChecksumMismatch
	}

	return verdictOK
}

// checksumWriter accumulates the digest of every chunk written to the
// output file, in the order the chunks were received.
type checksumWriter struct {
	hash hash.Hash
}

func (w *checksumWriter) Write(p []byte) (int, error) {
	return w.hash.Write(p)
}

func (w *checksumWriter) Sum() string {
	return hex.EncodeToString(w.hash.Sum(nil))
}

// FileChecksum computes the hex digest of the file at path.
func FileChecksum(path string, newHash func() hash.Hash) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	h := newHash()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile checks the digest of the file at path against expected.
func VerifyFile(path, expected string, newHash func() hash.Hash) error {
	actual, err := FileChecksum(path, newHash)
	if err != nil {
		return err
	}

	if normalizeChecksum(actual) != normalizeChecksum(expected) {
		return newError(KindChecksumMismatch, "expected %s, got %s", normalizeChecksum(expected), actual)
	}

	return nil
}
