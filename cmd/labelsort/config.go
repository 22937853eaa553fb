package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/api"
	"github.com/jsklabs/labelsort/internal/config"
	"github.com/jsklabs/labelsort/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage labelsort configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", h.ConfigPath())
		}

		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", h.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		c := *cfgMgr.Get()
		// Never print resolved secrets.
		if c.Shiprocket.Password != "" {
			c.Shiprocket.Password = "********"
		}
		return api.Output(c)
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
