package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const userAgent = "marathon-map/1.0 (+https://github.com/runmap/marathon-map)"

var downloadDelay = 0 * time.Second

var client = &http.Client{Timeout: 60 * time.Second}

var logger = slog.Default()

func SetDownloadDelay(t time.Duration) {
	downloadDelay = t
}

func SetLogger(l *slog.Logger) {
	logger = l
}

func AlwaysDownload(ctx context.Context, url string, filePath string) error {
	logger.Info("-- downloading", "url", url, "file", filePath)

	select {
	case <-time.After(downloadDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Add("user-agent", userAgent)
	response, err := client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	statusOK := response.StatusCode >= 200 && response.StatusCode < 300
	if !statusOK {
		return fmt.Errorf("non-OK HTTP status: %d", response.StatusCode)
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, response.Body); err != nil {
		return err
	}

	return WriteFile(filePath, buf.Bytes())
}

func DownloadFileIfOlder(ctx context.Context, url string, filePath string, maxAge time.Time) error {
	if mtime, err := GetMtime(filePath); err == nil && mtime.After(maxAge) {
		logger.Debug("-- cached", "file", filePath, "mtime", mtime)
		return nil
	}

	return AlwaysDownload(ctx, url, filePath)
}

func MustDownloadFileIfOlder(ctx context.Context, url string, filePath string, maxAge time.Time) {
	if err := DownloadFileIfOlder(ctx, url, filePath, maxAge); err != nil {
		panic(fmt.Errorf("while downloading '%s' to '%s': %v", url, filePath, err))
	}
}
