// Package github wraps the GitHub API calls needed to describe pull requests.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client
type Client struct {
	client *github.Client
	org    string
	repo   string
}

// NewClient creates a new GitHub client with token authentication
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

// NewClientWithBaseURL creates a client that talks to baseURL through httpClient.
// Used for GitHub Enterprise and for tests against a fake API.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}

	client := github.NewClient(httpClient)
	client.BaseURL = parsed
	return &Client{client: client}, nil
}

// WithRepository sets the repository every call operates on
func (c *Client) WithRepository(org, repo string) *Client {
	c.org = org
	c.repo = repo
	return c
}

// Org returns the organization the client operates on
func (c *Client) Org() string {
	return c.org
}

// Repo returns the repository the client operates on
func (c *Client) Repo() string {
	return c.repo
}

// paginatedList calls fetch for every page until GitHub reports no next page
func paginatedList[T any](fetch func(page int) ([]T, *github.Response, error)) ([]T, error) {
	var all []T
	page := 0
	for {
		items, resp, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}
	return all, nil
}
