// Package setup holds the first-run configuration command
package setup

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/config"
	"gopkg.in/yaml.v3"
)

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write the agency config file",
		Long: `Write ~/.config/agency/config.yaml (or $XDG_CONFIG_HOME/agency/config.yaml)
with the given API address. Existing settings are kept.

Examples:
  # Point the client at a backend
  agency setup --api-url https://cms.example.com/api/v1

  # Show the effective configuration
  agency setup --check`,
		Annotations: map[string]string{handler.SkipInit: "true"},
		RunE:        runSetup,
	}

	cmd.Flags().String("api-url", "", "CMS API root, ending in /api/v1")
	cmd.Flags().Bool("check", false, "Print the effective configuration and exit")

	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	formatter := handler.Formatter(cmd)

	cfg, err := config.Load()
	if err != nil {
		return formatter.Fail(fmt.Errorf("failed to load config: %w", err), handler.Kinds())
	}

	path, err := config.Path()
	if err != nil {
		return formatter.Fail(err, handler.Kinds())
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		if formatter.JSON {
			return formatter.Envelope(map[string]any{"path": path, "api": cfg.API, "polling": cfg.Polling})
		}
		data, err := yaml.Marshal(struct {
			API     config.APIConfig     `yaml:"api"`
			Polling config.PollingConfig `yaml:"polling"`
		}{cfg.API, cfg.Polling})
		if err != nil {
			return formatter.Fail(err, handler.Kinds())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
		return nil
	}

	raw, _ := cmd.Flags().GetString("api-url")
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return formatter.Usage(fmt.Errorf("nothing to set"), "Pass --api-url, or --check to inspect")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return formatter.Fail(fmt.Errorf("%w: %q is not an http(s) URL", handler.ErrInvalidFlag, raw), handler.Kinds())
	}

	cfg.API.BaseURL = raw
	if err := cfg.Save(); err != nil {
		return formatter.Fail(fmt.Errorf("failed to save config: %w", err), handler.Kinds())
	}
	return formatter.Message(map[string]string{"path": path, "api_url": raw}, "Saved %s (api: %s)", path, raw)
}
