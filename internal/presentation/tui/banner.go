package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Dice Journey ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Warm gradient, amber to crimson
	lines := []struct {
		text  string
		color string
	}{
		{`  ____  _             _                                    `, "#fbbf24"},
		{` |  _ \(_) ___ ___   | | ___  _   _ _ __ _ __   ___ _   _ `, "#f59e0b"},
		{` | | | | |/ __/ _ \  | |/ _ \| | | | '__| '_ \ / _ \ | | |`, "#f97316"},
		{` | |_| | | (_|  __/_ | | (_) | |_| | |  | | | |  __/ |_| |`, "#ef4444"},
		{` |____/|_|\___\___| \_| |\___/ \__,_|_|  |_| |_|\___|\__, |`, "#dc2626"},
		{`                     |__/                            |___/ `, "#b91c1c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
