package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/postsearch/internal/config"
	"github.com/Aman-CERP/postsearch/internal/output"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Inspect and create postsearch configuration.

The user configuration applies to every site on this machine.
A .postsearch.yaml in the working directory overrides it per site.`,
		Example: `  # Show effective configuration (merged from all sources)
  postsearch config show

  # Create user config with defaults
  postsearch config init

  # Print user config file path
  postsearch config path`,
	}

	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(root.cfg)
			}
			data, err := yaml.Marshal(root.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the user configuration file",
		Long: `Create the user configuration file with default values at
~/.config/postsearch/config.yaml ($XDG_CONFIG_HOME/postsearch/config.yaml
if XDG_CONFIG_HOME is set).

With --force an existing file is backed up, and options it lacks are
filled in with defaults. Existing settings are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Upgrade an existing configuration")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	configPath := config.GetUserConfigPath()

	if !config.UserConfigExists() {
		cfg := config.NewConfig()
		if err := cfg.WriteYAML(configPath); err != nil {
			return err
		}
		out.Success("Created user configuration")
		out.KeyValue("Location", configPath)
		if data, err := yaml.Marshal(cfg); err == nil {
			out.Code(string(data))
		}
		return nil
	}

	if !force {
		out.Warning("User configuration already exists")
		out.KeyValue("Location", configPath)
		out.Status("💡", "Use --force to add new defaults (keeps your settings)")
		return nil
	}

	backupPath, err := config.BackupUserConfig()
	if err != nil {
		return fmt.Errorf("failed to backup config: %w", err)
	}
	existing, err := config.LoadUserConfig()
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("config file disappeared during upgrade")
	}
	if err := existing.WithDefaults().WriteYAML(configPath); err != nil {
		return err
	}

	out.Success("Configuration upgraded")
	out.KeyValue("Location", configPath)
	out.KeyValue("Backup", backupPath)
	return nil
}
