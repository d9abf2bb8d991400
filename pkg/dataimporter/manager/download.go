package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/dataimporter/datasets"
	"github.com/travigo/hkmtr/pkg/util"
)

// errFileMissing marks an optional file the source does not have
var errFileMissing = errors.New("file missing")

const downloadRetries = 4

var httpClient = &http.Client{Timeout: 2 * time.Minute}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// fileLocation resolves where a format file is read from, either a per file override or the dataset source
func fileLocation(dataset *datasets.DataSet, name string) (string, error) {
	if location, exists := dataset.Files[name]; exists {
		return location, nil
	}

	if isValidUrl(dataset.Source) {
		return url.JoinPath(dataset.Source, name)
	}

	return filepath.Join(dataset.Source, name), nil
}

func readFile(ctx context.Context, dataset *datasets.DataSet, name string) ([]byte, error) {
	location, err := fileLocation(dataset, name)
	if err != nil {
		return nil, err
	}

	if isValidUrl(location) {
		return downloadFile(ctx, location, dataset.SourceAuthentication)
	}

	contents, err := os.ReadFile(location)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", location, errFileMissing)
	}

	return contents, err
}

func expandAuthentication(value string) string {
	env := util.GetEnvironmentVariables()

	return os.Expand(value, func(key string) string {
		return env[key]
	})
}

func downloadFile(ctx context.Context, source string, authentication datasets.SourceAuthentication) ([]byte, error) {
	sourceURL, err := url.Parse(source)
	if err != nil {
		return nil, err
	}

	if len(authentication.Query) > 0 {
		query := sourceURL.Query()
		for key, value := range authentication.Query {
			query.Set(key, expandAuthentication(value))
		}
		sourceURL.RawQuery = query.Encode()
	}

	var contents []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "hkmtr-data-importer")
		for key, value := range authentication.Header {
			req.Header.Set(key, expandAuthentication(value))
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s: %w", source, errFileMissing))
		case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%s returned %s", source, resp.Status)
		case resp.StatusCode >= http.StatusBadRequest:
			return backoff.Permanent(fmt.Errorf("%s returned %s", source, resp.Status))
		}

		contents, err = io.ReadAll(resp.Body)
		return err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 500 * time.Millisecond

	err = backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(retryBackoff, downloadRetries), ctx),
		func(err error, wait time.Duration) {
			log.Warn().Err(err).Str("source", source).Str("retry", wait.String()).Msg("Download failed")
		},
	)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("source", strings.SplitN(source, "?", 2)[0]).Int("bytes", len(contents)).Msg("Downloaded file")

	return contents, nil
}
