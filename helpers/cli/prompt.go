package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"
	"github.com/temoto/hypertap/log2"
)

// StopOnSignal stops a on first interrupt, second one exits immediately.
func StopOnSignal(a *alive.Alive, log *log2.Log) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		for s := range signalCh {
			if !a.IsRunning() {
				log.Errorf("signal=%v while stopping, exit now", s)
				os.Exit(1)
			}
			log.Debugf("signal=%v stopping", s)
			a.Stop()
		}
	}()
}

// Ask shows interactive prompt with completion on a terminal,
// otherwise reads one line from stdin.
func Ask(message string, suggests []prompt.Suggest) (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		complete := func(d prompt.Document) []prompt.Suggest {
			return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
		}
		return strings.TrimSpace(prompt.Input(message, complete)), nil
	}
	fmt.Fprint(os.Stderr, message)
	return ReadLine(os.Stdin)
}

// ReadLine returns first line of r without surrounding space.
// Missing trailing newline is fine, empty input is not.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", errors.Annotate(err, "read answer")
	}
	return strings.TrimSpace(line), nil
}
