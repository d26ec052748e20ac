//go:build headless

package main

// reportInteractive is a no-op in the headless build: there is no
// game window, so a terminal banner has nothing useful to point at.
func reportInteractive() {}
