// Package terminal prints the messages of the command line tools
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

// Terminal a wrapper around a Cobra command, with extra methods
// to display messages.
type Terminal interface {
	Debugf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Successf(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(err error, msg string, args ...interface{})
	Fatalf(err error, msg string, args ...interface{})
	PromptSelect(label string, items []string) (string, error)
	AddPreFatalExitHook(func())
}

// New returns a new terminal with the given funcs to
// access the `in` reader and `out` writer
func New(in func() io.Reader, out func() io.Writer, verbose bool) Terminal {
	return &DefaultTerminal{
		in:      in,
		out:     out,
		verbose: verbose,
		exit:    os.Exit,
	}
}

// DefaultTerminal a wrapper around a Cobra command, with extra methods
// to display messages.
type DefaultTerminal struct {
	in           func() io.Reader
	out          func() io.Writer
	verbose      bool
	exit         func(code int)
	preExitHooks []func()
}

// Debugf prints a message if the terminal is in verbose mode
func (t *DefaultTerminal) Debugf(msg string, args ...interface{}) {
	if !t.verbose {
		return
	}
	color.New(color.FgCyan).Fprintln(t.out(), fmt.Sprintf(msg, args...))
}

// Infof displays a message with the default color
func (t *DefaultTerminal) Infof(msg string, args ...interface{}) {
	fmt.Fprintln(t.out(), fmt.Sprintf(msg, args...))
}

// Successf displays a message in green
func (t *DefaultTerminal) Successf(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintln(t.out(), fmt.Sprintf(msg, args...))
}

// Warnf displays a message in yellow
func (t *DefaultTerminal) Warnf(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintln(t.out(), fmt.Sprintf(msg, args...))
}

// Errorf prints a message with the red color
func (t *DefaultTerminal) Errorf(err error, msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintln(t.out(), fmt.Sprintf(msg, args...))
	if err != nil {
		color.New(color.FgRed).Fprintln(t.out(), err.Error())
	}
}

// Fatalf prints a message with the red color, runs the pre-exit hooks and exits the program with code 1
func (t *DefaultTerminal) Fatalf(err error, msg string, args ...interface{}) {
	t.Errorf(err, msg, args...)
	for _, hook := range t.preExitHooks {
		hook()
	}
	t.exit(1)
}

// AddPreFatalExitHook registers a function called before Fatalf exits the program
func (t *DefaultTerminal) AddPreFatalExitHook(hook func()) {
	t.preExitHooks = append(t.preExitHooks, hook)
}

// PromptSelect asks the user to pick one of the items
func (t *DefaultTerminal) PromptSelect(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label:  label,
		Items:  items,
		Stdin:  io.NopCloser(t.in()),
		Stdout: nopWriteCloser{t.out()},
	}
	_, result, err := prompt.Run()
	return result, err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
