// ABOUTME: TUI client for joining office meetings over the HTTP API.
// ABOUTME: Drives a session controller with readline-style slash commands.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/officehq/office-gateway/internal/client"
	"github.com/officehq/office-gateway/internal/markdown"
	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/session"
)

func main() {
	server := flag.String("server", "http://localhost:8000", "Gateway server URL")
	flag.Parse()

	fmt.Printf("office-tui connected to %s\n", *server)
	fmt.Println("Type /meetings to list rooms, /join <id> to enter one. /help for commands. Ctrl+C to quit.")
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *server); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

func run(ctx context.Context, server string) error {
	api := client.New(server)
	controller := session.NewController(api, nil)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		// Prompt carries the current meeting title, like a channel name.
		if view, ok := controller.View(); ok {
			fmt.Printf("[%s]> ", view.Title)
		} else {
			fmt.Print("> ")
		}

		// Read input with context awareness
		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/quit" || input == "/q" {
			return nil
		}

		switch {
		case input == "/help":
			printHelp()
			fmt.Println()

		case input == "/meetings":
			if err := listMeetings(ctx, api); err != nil {
				printError(err)
			}
			fmt.Println()

		case strings.HasPrefix(input, "/join"):
			id := strings.TrimSpace(strings.TrimPrefix(input, "/join"))
			if id == "" {
				fmt.Println("Usage: /join <meeting-id>")
			} else if err := joinMeeting(ctx, api, controller, id); err != nil {
				printError(err)
			}
			fmt.Println()

		case input == "/exit":
			controller.Exit()
			fmt.Println("Left the meeting.")
			fmt.Println()

		case strings.HasPrefix(input, "/ask"):
			who := strings.TrimSpace(strings.TrimPrefix(input, "/ask"))
			if who == "" {
				fmt.Println("Usage: /ask <participant name or id>")
			} else if err := askParticipant(ctx, controller, who); err != nil {
				printError(err)
			} else {
				renderTimeline(controller)
			}
			fmt.Println()

		case input == "/refresh":
			if err := controller.Refresh(ctx); err != nil {
				printError(err)
			}
			renderTimeline(controller)
			fmt.Println()

		case input == "/who":
			printParticipants(controller)
			fmt.Println()

		case strings.HasPrefix(input, "/"):
			fmt.Printf("Unknown command: %s (try /help)\n\n", input)

		default:
			// Bare text is a message to the current meeting.
			if err := controller.SendMessage(ctx, input); err != nil {
				printError(err)
			} else {
				renderTimeline(controller)
			}
			fmt.Println()
		}
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /meetings          List meeting rooms")
	fmt.Println("  /join <id>         Enter a meeting room")
	fmt.Println("  /who               Show participants in the current meeting")
	fmt.Println("  /ask <name|id>     Ask a participant to respond")
	fmt.Println("  /refresh           Re-fetch the conversation from the server")
	fmt.Println("  /exit              Leave the current meeting")
	fmt.Println("  /help              Show this help")
	fmt.Println("  /quit              Exit the TUI")
	fmt.Println()
	fmt.Println("Anything else is sent as a message to the current meeting.")
}

func printError(err error) {
	if session.IsValidation(err) {
		color.Yellow("[rejected] %v", err)
		return
	}
	color.Red("[error] %v", err)
}

func listMeetings(ctx context.Context, api *client.Client) error {
	meetings, err := api.ListMeetings(ctx)
	if err != nil {
		return err
	}

	if len(meetings) == 0 {
		fmt.Println("No meetings yet")
		return nil
	}

	fmt.Println("Meetings:")
	for _, m := range meetings {
		fmt.Printf("  %s: %s (%d participants)\n", m.ID, m.Title, len(m.EmployeeIDs))
	}
	return nil
}

func joinMeeting(ctx context.Context, api *client.Client, controller *session.Controller, id string) error {
	mtg, err := api.GetMeeting(ctx, id)
	if err != nil {
		return err
	}
	employees, err := api.ListEmployees(ctx)
	if err != nil {
		return err
	}

	if err := controller.Open(ctx, mtg, employees); err != nil {
		// The session is open either way; show what we have.
		printError(err)
	}

	view, ok := controller.View()
	if !ok {
		return nil
	}

	cyan := color.New(color.FgCyan)
	cyan.Printf("— %s —\n", view.Title)
	if view.Description != "" {
		fmt.Println(markdown.ToText(view.Description))
	}
	printParticipants(controller)
	renderTimeline(controller)
	return nil
}

func printParticipants(controller *session.Controller) {
	view, ok := controller.View()
	if !ok {
		fmt.Println("Not in a meeting. Use /join <id> first.")
		return
	}

	fmt.Println("Participants:")
	for _, p := range view.Participants {
		fmt.Printf("  %s: %s (%s)\n", p.ID, p.Name, p.Role)
	}
}

// askParticipant resolves a name or id against the current view and
// requests a reply from that employee.
func askParticipant(ctx context.Context, controller *session.Controller, who string) error {
	view, ok := controller.View()
	if !ok {
		return errors.New("not in a meeting; use /join <id> first")
	}

	employeeID := who
	for _, p := range view.Participants {
		if strings.EqualFold(p.Name, who) {
			employeeID = p.ID
			break
		}
	}

	return controller.RequestReply(ctx, employeeID)
}

func renderTimeline(controller *session.Controller) {
	view, ok := controller.View()
	if !ok {
		return
	}

	gray := color.New(color.FgHiBlack)

	for _, msg := range view.Messages {
		gray.Printf("%s ", msg.CreatedAt.Local().Format("15:04"))
		if msg.SenderType == office.SenderUser {
			color.New(color.FgBlue).Printf("%s: ", msg.SenderName)
		} else {
			color.New(color.FgGreen).Printf("%s: ", msg.SenderName)
		}
		fmt.Println(markdown.ToText(msg.Content))
	}

	if view.Pending.Active() {
		gray.Printf("… %s\n", view.Pending)
	}
	if view.LastError != nil {
		color.Red("[stale] %v", view.LastError)
	}
}
