package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depeter/jellygrid/internal/cache"
	"github.com/depeter/jellygrid/internal/config"
	"github.com/depeter/jellygrid/internal/jellyfin"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().SaveTo(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func configPath(opts *options) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.ConfigPath()
}

func newLoginCmd(opts *options) *cobra.Command {
	var server, username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a Jellyfin server and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if server != "" {
				cfg.Server.URL = server
			}
			if username != "" {
				cfg.Server.Username = username
			}
			if cfg.Server.URL == "" || cfg.Server.Username == "" {
				return errors.New("--server and --username are required")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			client := jellyfin.NewClient(cfg.Server.URL)
			if err := client.Authenticate(cmd.Context(), cfg.Server.Username, password); err != nil {
				return err
			}
			cfg.Server.URL = client.ServerURL()
			cfg.Server.Token = client.Token()
			cfg.Server.UserID = client.UserID()

			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if err := cfg.SaveTo(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s, saved to %s\n", cfg.Server.Username, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "Server URL")
	cmd.Flags().StringVar(&username, "username", "", "User name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the poster cache",
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached poster",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return err
			}
			ic, err := cache.NewImageCache(dir, 1)
			if err != nil {
				return fmt.Errorf("open image cache: %w", err)
			}
			if err := ic.Purge(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", ic.Dir())
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the poster cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	cmd.AddCommand(clearCmd, pathCmd)
	return cmd
}
