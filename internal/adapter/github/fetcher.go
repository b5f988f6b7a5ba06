package github

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"code-darpan/internal/common"
	"code-darpan/internal/domain"

	"github.com/google/go-github/v53/github"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fetcher 基于 GitHub REST API 实现 port.RepoFetcher
type Fetcher struct {
	client *github.Client
}

// NewFetcher 创建 Fetcher，apiURL 为空时使用 api.github.com
func NewFetcher(token, apiURL string) (*Fetcher, error) {
	client := newClient(token)
	if apiURL != "" {
		if err := setBaseURL(client, apiURL); err != nil {
			return nil, err
		}
	}
	return &Fetcher{client: client}, nil
}

// Metadata 获取 star、fork 和主语言
// ctx 被取消或超时时原样返回，其他失败一律视为 NOT_FOUND
func (f *Fetcher) Metadata(ctx context.Context, ref domain.RepoRef) (domain.RepoMetadata, error) {
	repo, _, err := f.client.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RepoMetadata{}, fmt.Errorf("fetch %s: %w", ref.FullName(), ctxErr)
		}
		return domain.RepoMetadata{}, common.WrapError(common.ErrCodeNotFound, "Repo not found", err)
	}
	return domain.RepoMetadata{
		Stars:    repo.GetStargazersCount(),
		Forks:    repo.GetForksCount(),
		Language: repo.GetLanguage(),
	}, nil
}

// RootFiles 列出根目录条目名（小写）
func (f *Fetcher) RootFiles(ctx context.Context, ref domain.RepoRef) ([]string, error) {
	_, entries, _, err := f.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, "", nil)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDegradedFetch, "list root contents", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, strings.ToLower(entry.GetName()))
	}
	return files, nil
}

// Languages 获取各语言字节数
func (f *Fetcher) Languages(ctx context.Context, ref domain.RepoRef) (domain.LanguageBreakdown, error) {
	langs, _, err := f.client.Repositories.ListLanguages(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDegradedFetch, "list languages", err)
	}
	return domain.LanguageBreakdown(langs), nil
}

// Readme 获取并解码 README，解码失败返回 ""
func (f *Fetcher) Readme(ctx context.Context, ref domain.RepoRef) (string, error) {
	content, _, err := f.client.Repositories.GetReadme(ctx, ref.Owner, ref.Name, nil)
	if err != nil {
		return "", common.WrapError(common.ErrCodeDegradedFetch, "get readme", err)
	}
	return decodeReadme(content), nil
}

func decodeReadme(content *github.RepositoryContent) string {
	if content == nil {
		return ""
	}
	text, err := content.GetContent()
	if err != nil || !utf8.ValidString(text) {
		return ""
	}
	return text
}

// Snapshot 并发执行四个请求
// 元数据失败会取消其余请求并返回错误，其余请求失败时降级为空值
func (f *Fetcher) Snapshot(ctx context.Context, ref domain.RepoRef) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Ref:       ref,
		Files:     []string{},
		Languages: domain.LanguageBreakdown{},
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		meta, err := f.Metadata(gCtx, ref)
		if err != nil {
			return err
		}
		snap.Metadata = meta
		return nil
	})

	g.Go(func() error {
		files, err := f.RootFiles(gCtx, ref)
		if err != nil {
			logDegraded(ref, err)
			return nil
		}
		snap.Files = files
		return nil
	})

	g.Go(func() error {
		langs, err := f.Languages(gCtx, ref)
		if err != nil {
			logDegraded(ref, err)
			return nil
		}
		if langs != nil {
			snap.Languages = langs
		}
		return nil
	})

	g.Go(func() error {
		readme, err := f.Readme(gCtx, ref)
		if err != nil {
			logDegraded(ref, err)
			return nil
		}
		snap.Readme = readme
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func logDegraded(ref domain.RepoRef, err error) {
	logger.WithFields(logger.Fields{
		"owner": ref.Owner,
		"repo":  ref.Name,
	}).Warnf("⚠️ degraded fetch, continuing with empty data: %v", err)
}
