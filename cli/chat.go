package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"investpro/chat"
	"investpro/models"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the investment assistant",
		Long:  "Starts an interactive session with the assistant. Type /quit or send EOF to leave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, a, err := setup("", true)
			if err != nil {
				return err
			}
			defer a.close()

			session := a.newChatSession()
			defer session.Close()
			session.Toggle()

			return converse(cmd, session)
		},
	}
}

func converse(cmd *cobra.Command, session *chat.Session) error {
	out := cmd.OutOrStdout()
	for _, m := range session.Transcript() {
		printMessage(out, m)
	}
	if questions := session.QuickQuestions(); len(questions) > 0 {
		fmt.Fprintln(out, color.Gray.Sprint("Try: "+strings.Join(questions, " | ")))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, color.Bold.Sprint("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := scanner.Text()
		if trimmed := strings.TrimSpace(text); trimmed == "/quit" || trimmed == "/exit" {
			return nil
		}
		exchange, ok := session.Send(text)
		if !ok {
			continue
		}

		fmt.Fprintln(out, color.Gray.Sprint("Assistant is typing..."))
		select {
		case reply, ok := <-exchange.Reply:
			if !ok {
				return nil
			}
			printMessage(out, reply)
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}

func printMessage(w io.Writer, m models.ChatMessage) {
	stamp := m.Timestamp.Format("15:04")
	if m.FromBot {
		fmt.Fprintf(w, "%s %s %s\n", color.Gray.Sprint(stamp), color.Cyan.Sprint("assistant:"), m.Text)
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", color.Gray.Sprint(stamp), color.Blue.Sprint("you:"), m.Text)
}
