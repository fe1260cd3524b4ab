package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/measure"
)

// reportError prints err and, for located errors, the offending line with
// a caret under the column.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	var errLoc cpp.ErrorLoc
	if !errors.As(err, &errLoc) {
		return
	}
	pos := errLoc.Pos
	f, err := os.Open(pos.File)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(w)
	b := bufio.NewReader(f)
	lineno := 1
	for {
		line, err := b.ReadString('\n')
		if lineno == pos.Line {
			fmt.Fprintf(w, "%s", strings.TrimRight(line, "\r\n")+"\n")
			linelen := 0
			for _, v := range line {
				switch v {
				case '\t':
					linelen += 4
				case '\r', '\n':
					// nothing.
				default:
					linelen += 1
				}
			}
			for i := 0; i < linelen; i++ {
				if i+1 == pos.Col {
					fmt.Fprintf(w, "%c", '^')
					break
				}
				fmt.Fprintf(w, "%c", ' ')
			}
			fmt.Fprintln(w)
			return
		}
		lineno += 1
		if err != nil {
			return
		}
	}
}

// writeReport prints the top measurements of c, largest first, and the
// totals. Per file measures are labelled with the file name only.
func writeReport(w io.Writer, c *measure.Collector, perFile bool, prefix string) {
	name := c.Measure()
	label := "function"
	if perFile {
		label = "file"
	}
	fmt.Fprintf(w, "Nr. | %s | %s\n", name, label)
	for i, m := range c.Top() {
		var what string
		if perFile {
			what = strings.TrimPrefix(m.Unit, prefix)
		} else {
			what = fmt.Sprintf("%s %s:%d", m.Unit, strings.TrimPrefix(m.Pos.File, prefix), m.Pos.Line)
		}
		fmt.Fprintf(w, "%3d | %*d | %s\n", i+1, len(name), m.Count, what)
	}
	fmt.Fprintf(w, "%s total: %d, average: %.2f\n", name, c.Total(), c.Average())
}
