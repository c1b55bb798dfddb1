package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rnwolfe/siptrackr/internal/ui"
)

// stdin is where interactive prompts read from. Tests replace it.
var stdin io.Reader = os.Stdin

func stdinReader() *bufio.Reader {
	return bufio.NewReader(stdin)
}

// confirm asks a yes/no question. Anything but y/yes is a no.
func confirm(reader *bufio.Reader, question string) bool {
	fmt.Printf("  %s ", ui.Accent.Render(question+" [y/N]"))
	line, _ := reader.ReadString('\n')
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes"
}

// promptLine prints label and returns the trimmed line typed in reply.
func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(ui.Muted.Render("  " + label))
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
