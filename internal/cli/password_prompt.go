package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptNewPassword asks twice for a password on a terminal without echoing it.
func PromptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	first, err := promptHidden(stdin, out, "New password: ")
	if err != nil {
		return "", err
	}
	second, err := promptHidden(stdin, out, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	if first == "" {
		return "", errors.New("password must not be empty")
	}
	return first, nil
}

func promptHidden(stdin *os.File, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	restore, err := disableEcho(stdin.Fd())
	if err != nil {
		return "", fmt.Errorf("disable terminal echo: %w", err)
	}
	line, readErr := readLine(stdin)
	restore()
	fmt.Fprintln(out)
	return line, readErr
}

func readLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
