package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aprenda/tutor"
	"github.com/aprenda/tutor/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	Long:  `Runs the tutor in the terminal. Learning mode practices a grammar topic; simulator mode roleplays a real-life scenario.`,
	Run: func(cmd *cobra.Command, args []string) {
		mode, _ := cmd.Flags().GetString("mode")
		topic, _ := cmd.Flags().GetString("topic")
		theme, _ := cmd.Flags().GetString("theme")
		sessionID, _ := cmd.Flags().GetString("session")
		topicsPath, _ := cmd.Flags().GetString("topics")

		if mode != "learning" && mode != "simulator" {
			fmt.Printf("Unknown mode %q (want learning or simulator)\n", mode)
			os.Exit(1)
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		engine, _, err := buildEngine(cmd, topicsPath)
		if err != nil {
			fmt.Printf("Error initializing tutor: %v\n", err)
			os.Exit(1)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		render := func(s string) (string, error) { return s + "\n", nil }
		if interactive {
			tui.PrintBanner(tutor.Version)
			fmt.Printf("session: %s\n\n", sessionID)
			render = tui.NewRenderer()
		}

		ctx := cmd.Context()
		reader := bufio.NewReader(os.Stdin)

		// Learning mode opens with the lesson introduction before any input.
		if mode == "learning" {
			reply, _, err := engine.LearningTurn(ctx, sessionID, topic, "")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			printReply(reply, render)
		}

		for {
			if interactive {
				fmt.Print("> ")
			}
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			text := strings.TrimSpace(line)
			if text == "exit" || text == "quit" {
				fmt.Println("Tchau! 👋")
				return
			}

			var reply string
			if mode == "simulator" {
				reply, _, err = engine.SimulatorTurn(ctx, sessionID, theme, text)
			} else {
				reply, _, err = engine.LearningTurn(ctx, sessionID, topic, text)
			}
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			printReply(reply, render)
		}
	},
}

func printReply(reply string, render func(string) (string, error)) {
	out, err := render(reply)
	if err != nil {
		out = reply + "\n"
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("mode", "m", "learning", "Conversation mode: learning or simulator")
	chatCmd.Flags().StringP("topic", "t", "verb_to_be", "Grammar topic for learning mode")
	chatCmd.Flags().String("theme", "hotel", "Scenario theme for simulator mode")
	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume (default: new random ID)")
	chatCmd.Flags().String("topics", "", "Path to a topic catalog file (default: embedded catalog)")
}
