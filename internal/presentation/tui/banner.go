package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the templates banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _                       _       _", "#818cf8"},
		{" | |_ ___ _ __ ___  _ __ | | __ _| |_ ___  ___", "#a78bfa"},
		{" | __/ _ \\ '_ ` _ \\| '_ \\| |/ _` | __/ _ \\/ __|", "#c084fc"},
		{" | ||  __/ | | | | | |_) | | (_| | ||  __/\\__ \\", "#e879f9"},
		{"  \\__\\___|_| |_| |_| .__/|_|\\__,_|\\__\\___||___/", "#f472b6"},
		{"                   |_|", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
