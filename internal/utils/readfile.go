package utils

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
	"time"
)

func ReadFile(filePath string) ([]byte, error) {
	if strings.HasSuffix(filePath, ".gz") {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		zipReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zipReader.Close()

		return io.ReadAll(zipReader)
	}

	return os.ReadFile(filePath)
}

func GetMtime(filePath string) (time.Time, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return time.Time{}, err
	}
	return stat.ModTime(), nil
}
