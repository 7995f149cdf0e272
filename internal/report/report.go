// Package report prints scenario results for humans.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/excelchat/login-e2e/internal/loginflow"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
)

// Summary counts results.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
}

func (s Summary) OK() bool { return s.Failed == 0 }

// Summarize totals results.
func Summarize(results []loginflow.Result) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		s.Duration += r.Duration
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Write prints one line per scenario, with the error and screenshot path
// under failures when verbose, followed by a summary line.
func Write(w io.Writer, results []loginflow.Result, verbose bool) Summary {
	for _, r := range results {
		label := passLabel("PASS")
		if !r.Passed {
			label = failLabel("FAIL")
		}
		fmt.Fprintf(w, "%s %-45s %s\n", label, r.Scenario, dim(r.Duration.Round(time.Millisecond)))
		if r.Passed || !verbose {
			continue
		}
		fmt.Fprintf(w, "     %v\n", r.Err)
		if r.Screenshot != "" {
			fmt.Fprintf(w, "     screenshot: %s\n", r.Screenshot)
		}
	}

	s := Summarize(results)
	status := passLabel("ok")
	if !s.OK() {
		status = failLabel("FAILED")
	}
	fmt.Fprintf(w, "\n%s  %d passed, %d failed, %d total (%s)\n",
		status, s.Passed, s.Failed, s.Total, s.Duration.Round(time.Millisecond))
	return s
}
