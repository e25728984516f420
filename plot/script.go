package plot

/**
 * script.go - gnuplot script rendering
 */

import (
	"fmt"
	"io"
	"text/template"
)

var scriptTemplate = template.Must(template.New("gnuplot").Parse(`
set term {{.Terminal}} {{.TermOpts}} size {{.Width}},{{.Height}}

set xlabel "Seconds ago"
set xrange [{{.MaxXRange}}:0]
set grid xtics

set autoscale y
set ylabel "Mbps"
set grid ytics

set key autotitle columnhead
set key opaque

plot "{{.DataPath}}" using 1:2 with lines, \
     "{{.DataPath}}" using 1:3 with lines

bind "Close" exit
pause {{.Interval}}
reread
`))

/**
 * Values of the gnuplot script
 */
type ScriptParams struct {
	DataPath   string
	Interval   int
	NumSamples int
	Width      int
	Height     int
	Terminal   string

	// shown in window title, remote prefixed
	Title string
}

/**
 * Write gnuplot script that rereads DataPath every interval
 */
func WriteScript(w io.Writer, p ScriptParams) error {

	termOpts := fmt.Sprintf(`1 noraise title "Traffic - %s"`, p.Title)
	if p.Terminal == "dumb" {
		termOpts = "ansi256"
	}

	return scriptTemplate.Execute(w, struct {
		ScriptParams
		TermOpts  string
		MaxXRange int
	}{
		ScriptParams: p,
		TermOpts:     termOpts,
		MaxXRange:    p.Interval * (p.NumSamples - 1),
	})
}
