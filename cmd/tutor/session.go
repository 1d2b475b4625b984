package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aprenda/tutor"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, and remove sessions. Requires --redis; the in-memory store does not outlive the process.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		engine := requireRedisEngine(cmd)
		simulator, _ := cmd.Flags().GetBool("simulator")

		var sessions []string
		var err error
		if simulator {
			sessions, err = engine.SimulatorSessions().List(cmd.Context())
		} else {
			sessions, err = engine.Sessions().List(cmd.Context())
		}
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No active sessions found.")
			return
		}

		fmt.Println("Active Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := requireRedisEngine(cmd)
		simulator, _ := cmd.Flags().GetBool("simulator")
		sessionID := args[0]

		var state any
		var err error
		if simulator {
			state, err = engine.SimulatorSessions().Load(cmd.Context(), sessionID)
		} else {
			state, err = engine.Sessions().Load(cmd.Context(), sessionID)
		}
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling state: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := requireRedisEngine(cmd)
		simulator, _ := cmd.Flags().GetBool("simulator")
		hasError := false

		for _, sessionID := range args {
			var err error
			if simulator {
				err = engine.SimulatorSessions().Delete(cmd.Context(), sessionID)
			} else {
				err = engine.Sessions().Delete(cmd.Context(), sessionID)
			}
			if err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionCmd.PersistentFlags().Bool("simulator", false, "Target simulator sessions instead of learning sessions")
}

func requireRedisEngine(cmd *cobra.Command) *tutor.Engine {
	redisAddr, _ := cmd.Flags().GetString("redis")
	if redisAddr == "" {
		fmt.Println("The session commands require --redis (or TUTOR_REDIS_ADDR).")
		os.Exit(1)
	}
	engine, _, err := buildEngine(cmd, "")
	if err != nil {
		fmt.Printf("Error initializing tutor: %v\n", err)
		os.Exit(1)
	}
	return engine
}
