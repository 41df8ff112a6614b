package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxDownloadBytes bounds the size of a downloaded file.
const MaxDownloadBytes = 32 << 20

var client = &http.Client{Timeout: 30 * time.Second}

// DownloadFile returns the byte content of a file on a provided URL.
func DownloadFile(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, MaxDownloadBytes+1))
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	if len(buf) > MaxDownloadBytes {
		err = fmt.Errorf("file exceeds %d bytes", MaxDownloadBytes)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	log.Debug().Str("path", path).Int("bytes", len(buf)).Msg("downloaded file")

	return buf, nil
}
