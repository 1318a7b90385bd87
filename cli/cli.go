// ABOUTME: Shared plumbing for CLI commands
// ABOUTME: Output writer and clock are package variables so tests can replace them
package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
	now              = time.Now
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format, args...)
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// localNote reminds the user that writes vanish at exit.
const localNote = "  (saved to this session only; the mock data resets on restart)"
