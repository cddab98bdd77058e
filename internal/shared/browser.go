package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var currentOS = func() string { return runtime.GOOS }

// browserCommand resolves the launcher for the current platform. The BROWSER
// environment variable wins when set so the OAuth flow works over SSH or in
// minimal containers.
func browserCommand(url string) (*exec.Cmd, error) {
	if browser := os.Getenv("BROWSER"); browser != "" {
		return exec.Command(browser, url), nil
	}

	switch goos := currentOS(); goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenBrowser opens the system browser at the given URL. Callers should print
// the URL as a fallback since launching can fail in headless environments.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
