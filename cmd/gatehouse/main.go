// Command gatehouse is a small client for a gatehoused server. It uploads a
// single file and prints the canonical markdown snippet for it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kestrelworks/gatehouse"
)

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Stdout, os.Stderr, os.Args, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var errUploadFailed = errors.New("upload failed")

func run(
	ctx context.Context,
	stdout, stderr io.Writer,
	args []string,
	getenv func(string) string,
) error {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("gatehouse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		server     = fs.String("server", envOr(getenv, "GATEHOUSE_SERVER", "http://localhost:8080"), "gatehoused base URL")
		apiKey     = fs.String("api-key", getenv("GATEHOUSE_API_KEY"), "API key")
		uploadType = fs.String("type", "composer", "upload type (composer, avatar, csv)")
		isPM       = fs.Bool("pm", false, "destined for a private message")
		pasted     = fs.Bool("pasted", false, "pasted clipboard content")
	)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: gatehouse [flags] <file>")
		return errors.New("exactly one file argument is required")
	}
	if *apiKey == "" {
		return errors.New("an API key is required (-api-key or GATEHOUSE_API_KEY)")
	}

	client := &client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    *server,
		apiKey:     *apiKey,
	}

	filePath := fs.Arg(0)
	fileName := filepath.Base(filePath)

	presenter := &gatehouse.Presenter{
		Settings: client.fetchSettings(ctx),
		Messages: gatehouse.EnglishMessages{},
		Display: gatehouse.DisplayFunc(func(message string) {
			fmt.Fprintln(stderr, message)
		}),
	}

	markdown, result, err := client.upload(ctx, filePath, fileName, *uploadType, *isPM, *pasted)
	if err != nil {
		return err
	}
	if result != nil {
		presenter.Present(*result)
		return errUploadFailed
	}

	fmt.Fprintln(stdout, markdown)
	return nil
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// upload posts the file. It returns the rendered markdown on success, or a
// transport result describing the failure.
func (c *client) upload(ctx context.Context, filePath, fileName, uploadType string, isPM, pasted bool) (string, *gatehouse.TransportResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("upload_type", uploadType); err != nil {
		return "", nil, err
	}
	if isPM {
		if err := writer.WriteField("is_private_message", "true"); err != nil {
			return "", nil, err
		}
	}
	if pasted {
		if err := writer.WriteField("pasted", "true"); err != nil {
			return "", nil, err
		}
	}
	part, err := writer.CreateFormFile("files", fileName)
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", nil, err
	}
	if err := writer.Close(); err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads", body)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all; a bare error list.
		return "", &gatehouse.TransportResult{
			Errors:            []string{err.Error()},
			AttemptedFileName: fileName,
		}, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		return "", &gatehouse.TransportResult{
			Status:            resp.StatusCode,
			HasResponse:       true,
			Body:              respBody,
			AttemptedFileName: fileName,
		}, nil
	}

	var created struct {
		Markdown string `json:"markdown"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", nil, fmt.Errorf("decoding response: %w", err)
	}
	return created.Markdown, nil, nil
}

// fetchSettings pulls the server's upload limits so size-related failures can
// report the right numbers. A zeroed settings object is used when the call
// fails.
func (c *client) fetchSettings(ctx context.Context) *gatehouse.SiteUploadSettings {
	settings := &gatehouse.SiteUploadSettings{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/site/upload-settings", nil)
	if err != nil {
		return settings
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return settings
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return settings
	}

	var remote struct {
		MaxImageSizeKB      int `json:"max_image_size_kb"`
		MaxVideoSizeKB      int `json:"max_video_size_kb"`
		MaxAudioSizeKB      int `json:"max_audio_size_kb"`
		MaxAttachmentSizeKB int `json:"max_attachment_size_kb"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return settings
	}

	settings.MaxImageSizeKB = remote.MaxImageSizeKB
	settings.MaxVideoSizeKB = remote.MaxVideoSizeKB
	settings.MaxAudioSizeKB = remote.MaxAudioSizeKB
	settings.MaxAttachmentSizeKB = remote.MaxAttachmentSizeKB
	return settings
}

func envOr(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}
