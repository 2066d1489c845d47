package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter collects the operator inputs the flags did not provide.
type Prompter interface {
	PromptPath() (string, error)
	PromptPrefix() (string, error)
}

// InteractivePrompter reads inputs line by line from stdin.
type InteractivePrompter struct {
	Stdin     io.Reader
	OutWriter io.Writer

	reader *bufio.Reader
}

func (p *InteractivePrompter) PromptPath() (string, error) {
	if err := p.ensureTerminal("--path"); err != nil {
		return "", err
	}

	fmt.Fprint(p.out(), "Repository path: ")
	path, err := p.readLine()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New("repository path is required")
	}
	return path, nil
}

func (p *InteractivePrompter) PromptPrefix() (string, error) {
	if err := p.ensureTerminal("--prefix"); err != nil {
		return "", err
	}

	fmt.Fprint(p.out(), "Commit message prefix: ")
	return p.readLine()
}

func (p *InteractivePrompter) out() io.Writer {
	if p.OutWriter != nil {
		return p.OutWriter
	}
	return os.Stderr
}

func (p *InteractivePrompter) stdin() io.Reader {
	if p.Stdin != nil {
		return p.Stdin
	}
	return os.Stdin
}

func (p *InteractivePrompter) ensureTerminal(flag string) error {
	if f, ok := p.stdin().(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return fmt.Errorf("stdin is not a terminal, use %s to supply the value", flag)
		}
	}
	return nil
}

func (p *InteractivePrompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.stdin())
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}
