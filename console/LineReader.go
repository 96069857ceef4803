package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"iot-simulator/controller"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"
)

// LineReader reads one line of user input after showing prompt.
// It returns io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type scannerReader struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewScannerReader reads newline-terminated lines of any length from in and
// writes prompts to out. A final line without a newline is still returned.
func NewScannerReader(in io.Reader, out io.Writer) LineReader {
	return &scannerReader{reader: bufio.NewReader(in), out: out}
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// promptReader reads from an interactive terminal with completion.
// Ctrl-C ends the current read and every later one with io.EOF.
type promptReader struct {
	fd          int
	completers  map[string]prompt.Completer
	interrupted bool
}

// NewPromptReader offers menu choices at MenuPrompt and device IDs at TogglePrompt.
func NewPromptReader(devices []controller.Entry) LineReader {
	return &promptReader{
		fd: int(os.Stdin.Fd()),
		completers: map[string]prompt.Completer{
			MenuPrompt:   menuCompleter,
			TogglePrompt: newDeviceCompleter(devices),
		},
	}
}

func (r *promptReader) onInterrupt(*prompt.Buffer) {
	r.interrupted = true
}

func (r *promptReader) shouldExit(string, bool) bool {
	return r.interrupted
}

func (r *promptReader) ReadLine(promptText string) (string, error) {
	if r.interrupted {
		return "", io.EOF
	}

	// go-prompt can leave the terminal in raw mode
	if state, err := term.GetState(r.fd); err == nil {
		defer func() {
			_ = term.Restore(r.fd, state)
		}()
	}

	completer, ok := r.completers[promptText]
	if !ok {
		completer = noCompletion
	}
	line := prompt.Input(promptText, completer,
		prompt.OptionTitle("iot-simulator"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionAddKeyBind(prompt.KeyBind{Key: prompt.ControlC, Fn: r.onInterrupt}),
		prompt.OptionSetExitCheckerOnInput(r.shouldExit),
	)
	if r.interrupted {
		return "", io.EOF
	}
	return line, nil
}

// NewLineReader uses the interactive reader when in is a terminal and a plain
// line scanner otherwise.
func NewLineReader(in *os.File, out io.Writer, devices []controller.Entry) LineReader {
	if in == os.Stdin && term.IsTerminal(int(in.Fd())) {
		return NewPromptReader(devices)
	}
	return NewScannerReader(in, out)
}
