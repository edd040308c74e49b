package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

var loader *spinner.Spinner

// StartSpinner starts the CLI loading spinner on stderr. Build tools capture
// stderr into their logs, so nothing is drawn unless stderr is a terminal.
func StartSpinner(suffix string) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + suffix
	loader.Start()
}

// StopSpinner stops the CLI loading spinner.
func StopSpinner() {
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
