package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// resolveTargetInput returns the URL to analyze, prompting on in when none
// was given and prompting is allowed. Blank answers re-prompt; EOF gives up.
func resolveTargetInput(url string, nonInteractive bool, in io.Reader, prompt io.Writer) (string, error) {
	if s := strings.TrimSpace(url); s != "" {
		return s, nil
	}
	if nonInteractive {
		return "", usageErrorf("a URL is required in non-interactive mode (use --url)")
	}
	if in == nil {
		return "", usageErrorf("no input available to prompt for a URL")
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(prompt, "Enter URL to analyze: ")
		line, err := reader.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(prompt)
				return "", usageErrorf("no URL provided")
			}
			return "", usageErrorf("read URL: %w", err)
		}
	}
}
