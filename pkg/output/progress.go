package output

import (
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

// barTemplate keeps the document bar on a single line
const barTemplate = `{{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }}`

// NewDocumentBar starts a progress bar over document pairs.
// Useful when diffing long multi-document streams.
func NewDocumentBar(total int) *pb.ProgressBar {
	bar := pb.New(total)
	bar.SetTemplateString(barTemplate)
	bar.SetWriter(os.Stderr)
	bar.Start()
	return bar
}

// IsTerminal reports whether f is attached to a terminal. Progress and
// color are only useful on interactive runs.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
