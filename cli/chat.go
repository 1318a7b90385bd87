// ABOUTME: Chat CLI commands
// ABOUTME: Line-oriented chat REPL and a one-shot ask command over the dispatcher
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/inscrm/chat"
	"golang.org/x/term"
)

const replHelp = `Commands:
  /mode local|remote   switch answer mode
  /clear               start over
  /quit                leave the chat`

// Interactive reports whether stdin is a terminal, so callers can pick the
// full-screen chat over the line REPL.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ChatCommand runs a line-oriented chat on stdin/stdout until EOF or /quit.
func ChatCommand(ctx context.Context, d *chat.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	mode := fs.String("mode", "", "Answer mode (local, remote)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	session := d.Session()
	if *mode != "" {
		m, err := chat.ParseMode(*mode)
		if err != nil {
			return err
		}
		session.SetMode(m)
	}
	session.SetOpen(true)
	defer session.SetOpen(false)

	for _, msg := range session.Messages() {
		printf("assistant> %s\n", msg.Content)
	}
	printf("(%s mode, /help for commands)\n", session.Mode())

	scanner := bufio.NewScanner(stdin)
	for {
		printf("you> ")
		if !scanner.Scan() {
			printf("\n")
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/help":
			printf("%s\n", replHelp)
			continue
		case line == "/clear":
			session.Clear()
			printf("assistant> %s\n", chat.GreetingText)
			continue
		case strings.HasPrefix(line, "/mode"):
			arg := strings.TrimSpace(strings.TrimPrefix(line, "/mode"))
			if arg == "" {
				printf("Current mode: %s\n", session.Mode())
				continue
			}
			m, err := chat.ParseMode(arg)
			if err != nil {
				printf("Error: %v\n", err)
				continue
			}
			session.SetMode(m)
			printf("✓ Switched to %s mode\n", m)
			continue
		}

		reply, err := d.Send(ctx, line)
		if err != nil {
			if errors.Is(err, chat.ErrBusy) || errors.Is(err, chat.ErrEmpty) {
				printf("Error: %v\n", err)
				continue
			}
			return err
		}
		printf("assistant> %s\n", reply.Content)
	}
	return scanner.Err()
}

// AskCommand answers a single question and prints the reply.
func AskCommand(ctx context.Context, d *chat.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	mode := fs.String("mode", "", "Answer mode (local, remote)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		return fmt.Errorf("question required")
	}
	if *mode != "" {
		m, err := chat.ParseMode(*mode)
		if err != nil {
			return err
		}
		d.Session().SetMode(m)
	}

	reply, err := d.Send(ctx, question)
	if err != nil {
		return err
	}
	printf("%s\n", reply.Content)
	return nil
}
