package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"
)

// newClient 创建 GitHub 客户端，token 为空时匿名访问（每小时 60 次）
func newClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// setBaseURL 切换 API 地址，比如 GitHub Enterprise
func setBaseURL(client *github.Client, raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	client.BaseURL = baseURL
	return nil
}
