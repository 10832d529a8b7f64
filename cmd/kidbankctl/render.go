package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 120

// printMarkdown renders md for the terminal, or prints it as is with -plain
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
