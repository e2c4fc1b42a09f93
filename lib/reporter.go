package lib

import (
	"errors"
	"fmt"
	"log"
)

const (
	UnexpectedCharacter = "Unexpected character."
	UnterminatedString  = "Unterminated string."
	NumberOutOfRange    = "Number literal out of range."
)

// Reporter receives scan diagnostics. Implementations must return normally;
// the scanner carries on after every report.
type Reporter interface {
	Report(line int, message string)
}

type ReporterFunc func(line int, message string)

func (f ReporterFunc) Report(line int, message string) {
	f(line, message)
}

type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
}

// Diagnostics collects reports in the order they arrive.
type Diagnostics struct {
	list []Diagnostic
}

func (d *Diagnostics) Report(line int, message string) {
	d.list = append(d.list, Diagnostic{Line: line, Message: message})
}

func (d *Diagnostics) List() []Diagnostic {
	return d.list
}

func (d *Diagnostics) HadError() bool {
	return len(d.list) > 0
}

// Err joins every collected diagnostic, or returns nil if there were none.
func (d *Diagnostics) Err() error {
	if len(d.list) == 0 {
		return nil
	}
	errs := make([]error, 0, len(d.list))
	for _, diag := range d.list {
		errs = append(errs, diag)
	}
	return errors.Join(errs...)
}

func (d *Diagnostics) Reset() {
	d.list = nil
}

type logReporter struct {
	logger *log.Logger
}

func NewLogReporter(logger *log.Logger) Reporter {
	return &logReporter{logger: logger}
}

func (r *logReporter) Report(line int, message string) {
	r.logger.Println(Diagnostic{Line: line, Message: message}.Error())
}

type multiReporter []Reporter

// MultiReporter forwards every report to each of reporters in turn.
func MultiReporter(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) Report(line int, message string) {
	for _, r := range m {
		r.Report(line, message)
	}
}

type discardReporter struct{}

func (discardReporter) Report(int, string) {}
