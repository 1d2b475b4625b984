package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Tutor is a deterministic English tutoring backend",
	Long:  `Tutor runs a rule-based conversational tutor for Portuguese speakers learning English: a learning mode anchored to grammar lessons and a roleplay simulator.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// .env is optional; environment wins over file values.
	_ = godotenv.Load()

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("redis", os.Getenv("TUTOR_REDIS_ADDR"), "Redis address for session persistence (empty = in-memory)")
}
