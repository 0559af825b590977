package pretty

import (
	"fmt"
	"os"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/mattn/go-isatty"
)

var (
	Colorless   bool
	Disabled    bool
	Interactive bool
	White       string
	Grey        string
	Red         string
	Green       string
	Blue        string
	Yellow      string
	Magenta     string
	Cyan        string
	Reset       string
	Bold        string
	Faint       string
	Underline   string
)

func csi(value string) string {
	return fmt.Sprintf("\033[%s", value)
}

// Setup detects the terminal and enables color variables when stdout
// is a TTY. NO_COLOR and missing TERM force plain output.
func Setup() {
	stdin := isatty.IsTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd())
	stderr := isatty.IsTerminal(os.Stderr.Fd())

	if os.Getenv("NO_COLOR") != "" {
		Colorless = true
	}
	if os.Getenv("TERM") == "" {
		Colorless = true
	}

	Interactive = stdin && stdout && stderr

	common.Trace("Interactive mode enabled: %v; colors enabled: %v", Interactive, !Colorless && !Disabled)
	if stdout && !Colorless && !Disabled {
		White = csi("97m")
		Grey = csi("90m")
		Red = csi("91m")
		Green = csi("92m")
		Yellow = csi("93m")
		Blue = csi("94m")
		Magenta = csi("95m")
		Cyan = csi("96m")
		Reset = csi("0m")
		Bold = csi("1m")
		Faint = csi("2m")
		Underline = csi("4m")
	}
}
