package ui

import (
	"os"
	"os/exec"
	"runtime"
)

// openURL opens url in the user's browser. $BROWSER wins when set.
func openURL(url string) error {
	var cmd *exec.Cmd
	if browser := os.Getenv("BROWSER"); browser != "" {
		cmd = exec.Command(browser, url)
	} else {
		switch runtime.GOOS {
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", url)
		case "darwin":
			cmd = exec.Command("open", url)
		default: // linux, freebsd, etc.
			cmd = exec.Command("xdg-open", url)
		}
	}
	return cmd.Start()
}
