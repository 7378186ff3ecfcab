package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type responseOutput struct {
	Response string `json:"response"`
}

// callGenerate posts prompt to the blocking or streaming endpoint and prints
// the result to out. A non-200 reply is printed, not returned as an error.
func callGenerate(ctx context.Context, client *http.Client, apiURL, prompt string, stream bool, out io.Writer) error {
	endpoint := strings.TrimRight(apiURL, "/") + "/generate"
	if stream {
		endpoint += "-stream"
	}
	body, err := json.Marshal(promptRequest{Prompt: prompt})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, "Error:", resp.StatusCode, string(b))
		return err
	}

	if stream {
		if _, err := io.Copy(out, resp.Body); err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
		_, err = fmt.Fprintln(out)
		return err
	}

	var ro responseOutput
	if err := json.NewDecoder(resp.Body).Decode(&ro); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	_, err = fmt.Fprintln(out, "Response:", ro.Response)
	return err
}
