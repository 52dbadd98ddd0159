package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratadocs/strata/internal/config"
	"github.com/stratadocs/strata/internal/home"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the strata home directory and default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := dir.EnsureExists(); err != nil {
			return err
		}

		if dir.ConfigExists() {
			fmt.Printf("Config already exists at %s\n", dir.ConfigPath())
			return nil
		}
		if err := config.WriteDefault(dir.ConfigPath()); err != nil {
			return err
		}

		fmt.Printf("Initialized %s\n", dir.Path())
		fmt.Printf("Wrote default config to %s\n", dir.ConfigPath())
		fmt.Println("Set OPENROUTER_API_KEY / OPENAI_API_KEY to enable the model tiers.")
		return nil
	},
}
