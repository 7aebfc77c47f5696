package fitsindex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmFunc answers the yes/no prompt guarding destructive
// operations. Only an affirmative return permits the operation.
type ConfirmFunc func(prompt string) bool

// StdinConfirm builds the interactive gate: it writes the prompt to w,
// reads one line from r and affirms only on "y" (case-insensitive).
// Every other answer prints an abort notice and declines.
func StdinConfirm(r io.Reader, w io.Writer) ConfirmFunc {
	reader := bufio.NewReader(r)
	return func(prompt string) bool {
		fmt.Fprintf(w, "%s Are you sure? (y/N) ", prompt)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w, "Aborted.")
			return false
		}
		if strings.EqualFold(strings.TrimSpace(line), "y") {
			return true
		}

		fmt.Fprintln(w, "Aborted.")
		return false
	}
}

func (ix *Index) confirmed(prompt string) bool {
	if ix.confirm == nil {
		ix.logger.Warn("no confirmation gate installed, declining: %s", prompt)
		return false
	}
	return ix.confirm(prompt)
}
