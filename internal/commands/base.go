// Package commands holds the setup and helpers shared by pr-describer commands.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alan/pr-describer/cmd"
	"github.com/alan/pr-describer/internal/github"
)

// BaseCommand provides common fields and initialization for all commands
type BaseCommand struct {
	ConfigFile   *string
	LoadConfig   func(string) (*cmd.Config, error)
	GitHubClient *github.Client
	Config       *cmd.Config
}

// Init loads the configuration and creates a GitHub client for the configured repository
func (bc *BaseCommand) Init(ctx context.Context) error {
	config, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	if config.Org == "" || config.Repo == "" {
		return fmt.Errorf("org and repo must be set in %s (run 'pr-describer config')", *bc.ConfigFile)
	}
	bc.Config = config

	token, err := getGitHubToken()
	if err != nil {
		return err
	}
	bc.GitHubClient = github.NewClient(ctx, token).WithRepository(config.Org, config.Repo)

	return nil
}

// getGitHubToken retrieves and validates the GitHub token
func getGitHubToken() (string, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	return token, nil
}
