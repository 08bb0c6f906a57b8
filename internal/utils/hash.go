package utils

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MustCopyHash copies src to dstDir/dst, replacing "HASH" in dst with the
// first bytes of the content hash. The returned name is relative to dstDir.
func MustCopyHash(src, dst, dstDir string) string {
	res, err := CopyHash(src, dst, dstDir)
	if err != nil {
		panic(err)
	}
	return res
}

func CopyHash(src, dst, dstDir string) (string, error) {
	stat, err := os.Stat(src)
	if err != nil {
		return "", err
	}
	if !stat.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", src)
	}

	data, err := ReadFile(src)
	if err != nil {
		return "", err
	}

	return WriteHash(data, dst, dstDir)
}

// WriteHash stores generated content under a content-hashed name.
func WriteHash(data []byte, dst, dstDir string) (string, error) {
	dstHash := strings.ReplaceAll(dst, "HASH", Hash(data))
	if err := WriteFile(filepath.Join(dstDir, dstHash), data); err != nil {
		return "", err
	}
	logger.Debug("-- copied", "dst", dstHash)
	return dstHash, nil
}

func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%.8x", h[:])
}

func ComputeHash(fileName string) (string, error) {
	data, err := ReadFile(fileName)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
