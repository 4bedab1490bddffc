package label

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console is a [Prompter] over a line-oriented input stream and an output
// writer, typically stdin and stdout.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Prompter = (*Console)(nil)

// NewConsole returns a console prompter reading lines from in and writing
// prompts and output to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Print implements [Prompter].
func (c *Console) Print(line string) {
	fmt.Fprintln(c.out, line)
}

// ReadLine implements [Prompter]. A final line without a trailing newline is
// still delivered; only a bare EOF surfaces as an error.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
