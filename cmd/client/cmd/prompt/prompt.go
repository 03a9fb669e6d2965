// Package prompt читает ввод пользователя: обычные строки и пароли без эха.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Prompter struct {
	in      *bufio.Scanner
	out     io.Writer
	stdinFd int
	isTTY   bool
}

// New читает из in. Пароли читаются через term, только если in - это терминал.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:      bufio.NewScanner(in),
		out:     out,
		stdinFd: -1,
	}

	if f, ok := in.(*os.File); ok {
		p.stdinFd = int(f.Fd())
		p.isTTY = term.IsTerminal(p.stdinFd)
	}

	return p
}

// Scanner отдает общий сканер, чтобы оболочка и подсказки не делили stdin
func (p *Prompter) Scanner() *bufio.Scanner {
	return p.in
}

func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("ошибка чтения ввода: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Multiline читает строки до одиночной точки или конца ввода
func (p *Prompter) Multiline(label string) (string, error) {
	fmt.Fprintln(p.out, label+" (завершите строкой с одной точкой)")

	var lines []string
	for p.in.Scan() {
		line := p.in.Text()
		if strings.TrimSpace(line) == "." {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
	if err := p.in.Err(); err != nil {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

func (p *Prompter) Secret(label string) (string, error) {
	if !p.isTTY {
		return p.Line(label)
	}

	fmt.Fprint(p.out, label)
	password, err := term.ReadPassword(p.stdinFd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}

// Confirm возвращает true только на явное да
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Line(label + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return true, nil
	default:
		return false, nil
	}
}
