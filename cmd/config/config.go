// Package config implements the config command for initializing and updating pr-describer configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/alan/pr-describer/cmd"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
)

var (
	sshRemotePattern   = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)
	httpsRemotePattern = regexp.MustCompile(`^https://(?:[^@/]+@)?github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// configFlags holds the values passed on the command line
type configFlags struct {
	org       string
	repo      string
	toolName  string
	indent    int
	indentSet bool
}

// NewConfigCmd creates and returns the config command
func NewConfigCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) *cobra.Command {
	var flags configFlags

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize or update the .pr-describer.yaml configuration file",
		Long: `Config writes the repository coordinates and rendering options used by
the describe command.

When run inside a git repository, the organization and repository are
detected from the origin remote unless given explicitly. Existing values
in the configuration file are kept for every flag that is not set.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			flags.indentSet = cobraCmd.Flags().Changed("indent")
			return runConfigWithGitDetection(cobraCmd.OutOrStdout(), *globalConfigFile, flags, detectWorkingDirectory, loadConfig, saveConfig)
		},
	}

	cobraCmd.Flags().StringVarP(&flags.org, "org", "o", "", "GitHub organization or username (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&flags.repo, "repo", "r", "", "GitHub repository name (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&flags.toolName, "tool-name", "t", "", "Tool name shown in the generated description header")
	cobraCmd.Flags().IntVar(&flags.indent, "indent", 0, "Number of spaces prefixed to every line after the first")

	return cobraCmd
}

// runConfigWithGitDetection fills missing coordinates from git before saving
func runConfigWithGitDetection(
	out io.Writer,
	configFile string,
	flags configFlags,
	detect func() (*GitRepoInfo, error),
	loadConfig func(string) (*cmd.Config, error),
	saveConfig func(string, *cmd.Config) error,
) error {
	config, isUpdate := loadOrCreateConfig(configFile, loadConfig)
	updateConfigWithProvidedValues(config, flags)

	if config.Org == "" || config.Repo == "" {
		if gitInfo, err := detect(); err == nil {
			if config.Org == "" {
				config.Org = gitInfo.Org
				slog.Info("Auto-detected organization", "org", config.Org)
			}
			if config.Repo == "" {
				config.Repo = gitInfo.Repo
				slog.Info("Auto-detected repository", "repo", config.Repo)
			}
		} else {
			slog.Debug("Git detection unavailable", "error", err)
		}
	}

	if config.Org == "" {
		return fmt.Errorf("organization is required (use --org flag or run from a git repository)")
	}
	if config.Repo == "" {
		return fmt.Errorf("repository is required (use --repo flag or run from a git repository)")
	}
	if config.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", config.Indent)
	}

	if err := saveConfig(configFile, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayConfigSuccess(out, configFile, config, isUpdate)
	return nil
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(out io.Writer, configFile string, config *cmd.Config, isUpdate bool) {
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	opts := config.RenderOptions()
	fmt.Fprintf(out, "Successfully %s %s with:\n", action, configFile)
	fmt.Fprintf(out, "  Organization: %s\n", config.Org)
	fmt.Fprintf(out, "  Repository: %s\n", config.Repo)
	fmt.Fprintf(out, "  Tool Name: %s\n", opts.ToolName)
	fmt.Fprintf(out, "  Indent: %d\n", opts.Indent)
}

// loadOrCreateConfig loads existing config or creates a new one
func loadOrCreateConfig(configFile string, loadConfig func(string) (*cmd.Config, error)) (*cmd.Config, bool) {
	if config, err := loadConfig(configFile); err == nil {
		return config, true
	}
	return &cmd.Config{}, false
}

// updateConfigWithProvidedValues updates config with any provided values
func updateConfigWithProvidedValues(config *cmd.Config, flags configFlags) {
	if flags.org != "" {
		config.Org = flags.org
	}
	if flags.repo != "" {
		config.Repo = flags.repo
	}
	if flags.toolName != "" {
		config.ToolName = flags.toolName
	}
	if flags.indentSet {
		config.Indent = flags.indent
	}
}

// GitRepoInfo holds detected git repository information
type GitRepoInfo struct {
	Org  string
	Repo string
}

func detectWorkingDirectory() (*GitRepoInfo, error) {
	return detectGitRepoInfo(".")
}

// detectGitRepoInfo reads the origin remote of the repository containing path
func detectGitRepoInfo(path string) (*GitRepoInfo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("not in a git repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("failed to read origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, errors.New("origin remote has no URL")
	}

	org, name, err := parseRemoteURL(urls[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse git remote: %w", err)
	}

	return &GitRepoInfo{Org: org, Repo: name}, nil
}

// parseRemoteURL extracts org and repo from various GitHub URL formats
func parseRemoteURL(remoteURL string) (string, string, error) {
	if matches := sshRemotePattern.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}
	if matches := httpsRemotePattern.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}
	return "", "", fmt.Errorf("unable to parse GitHub remote URL: %s", remoteURL)
}
