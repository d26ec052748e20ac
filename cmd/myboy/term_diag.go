//go:build !headless

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// reportInteractive prints a short banner when stdout is attached to
// a real terminal, and stays silent otherwise (piped output, a CI
// log) — the same gate terminal_host.go uses before touching raw
// mode, applied here just to decide whether printing is worthwhile.
func reportInteractive() {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return
	}
	fmt.Printf("myboy: interactive terminal detected (%dx%d); press F9 in the game window to copy a register dump\n", width, height)
}
