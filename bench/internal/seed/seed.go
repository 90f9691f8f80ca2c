package seed

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

type createRequest struct {
	TargetURL string `json:"targetUrl"`
}

type createResponse struct {
	Code string `json:"code"`
}

// Run populates the target with links so redirect attacks have codes to hit.
func Run(baseURL string, count int, insecureSkipVerify bool, timeout time.Duration) ([]string, error) {
	numWorkers := runtime.NumCPU() * 2
	fmt.Printf("Seeding %d links (workers: %d)...\n", count, numWorkers)

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: insecureSkipVerify},
			MaxIdleConns:        numWorkers * 2,
			MaxIdleConnsPerHost: numWorkers * 2,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}

	codes := make([]string, count)
	var progress atomic.Int64

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(numWorkers)

	for i := range count {
		g.Go(func() error {
			code, err := createLink(client, baseURL, i)
			if err != nil {
				return fmt.Errorf("failed to create link %d: %w", i, err)
			}
			codes[i] = code
			done := progress.Add(1)
			if done%1000 == 0 {
				fmt.Printf("\rProgress: %d/%d", done, count)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fmt.Printf("\nSeeding complete: %d codes\n", len(codes))
	return codes, nil
}

func createLink(client *http.Client, baseURL string, index int) (string, error) {
	body, err := json.Marshal(createRequest{
		TargetURL: fmt.Sprintf("https://example.com/seed/%d", index),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/links", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result createResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Code, nil
}
