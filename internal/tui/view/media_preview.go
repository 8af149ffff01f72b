package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
)

const mediaPreviewRows = 14

// MediaPreviewer renders story images as terminal symbols through chafa.
type MediaPreviewer struct {
	HTTP     *http.Client
	LookPath func(string) (string, error)
	Rows     int
}

func NewMediaPreviewer(httpClient *http.Client) *MediaPreviewer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MediaPreviewer{HTTP: httpClient, LookPath: exec.LookPath, Rows: mediaPreviewRows}
}

func (p *MediaPreviewer) Render(ctx context.Context, mediaURL string, width int) (string, error) {
	if width < 30 {
		width = 40
	}
	chafaPath, err := p.LookPath("chafa")
	if err != nil {
		return "", fmt.Errorf("chafa is not installed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("build media request: %w", err)
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download media: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read media: %w", err)
	}

	cmd := exec.CommandContext(ctx, chafaPath, chafaArgs(width, p.Rows)...)
	cmd.Stdin = bytes.NewReader(data)
	output, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		return "", fmt.Errorf("render media via chafa: %w: %s", err, trimmed)
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty output")
	}
	return trimmed, nil
}

func chafaArgs(width, rows int) []string {
	if rows < 1 {
		rows = mediaPreviewRows
	}
	size := fmt.Sprintf("%dx%d", width, rows)
	return []string{
		"--size", size,
		"--view-size", size,
		"--align", "top,center",
		"--format", "symbols",
		"-",
	}
}
