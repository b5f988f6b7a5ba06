package main

import (
	"context"
	"io"

	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"code-darpan/internal/adapter/gemini"
	"code-darpan/internal/adapter/github"
	"code-darpan/internal/adapter/httpapi"
	"code-darpan/internal/adapter/insight"
	"code-darpan/internal/adapter/llm"
	"code-darpan/internal/adapter/repository"
	"code-darpan/internal/config"
	"code-darpan/internal/port"
	"code-darpan/internal/service"
)

// buildContainer 注册所有依赖
func buildContainer(cfg *config.Config) (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		provideFetcher,
		provideGenerator,
		provideAdvisor,
		provideStore,
		provideService,
		provideHandler,
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return nil, err
		}
	}
	return container, nil
}

func provideFetcher(cfg *config.Config) (port.RepoFetcher, error) {
	return github.NewFetcher(cfg.GitHubToken, cfg.GitHubAPIURL)
}

// provideGenerator 当前 provider 没有密钥时返回 nil，此时摘要全部走兜底
func provideGenerator(cfg *config.Config) (port.TextGenerator, error) {
	if !cfg.HasGenerator() {
		logger.Warnf("⚠️ no credential for llm_provider %q, summaries run in backup mode", cfg.LLMProvider)
		return nil, nil
	}

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return llm.NewGenerator(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel), nil
	default:
		gen, err := gemini.NewGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warnf("⚠️ gemini unavailable, summaries run in backup mode: %v", err)
			return nil, nil
		}
		return gen, nil
	}
}

func provideAdvisor(cfg *config.Config, gen port.TextGenerator) port.Advisor {
	return insight.NewAdvisor(gen, insight.WithTimeout(cfg.SummaryTimeout))
}

// provideStore 未开启存档或数据库连不上时返回 nil，分析功能不受影响
func provideStore(cfg *config.Config) port.ReportStore {
	if cfg.DatabaseDSN == "" {
		return nil
	}
	store, err := repository.NewPostgresStore(cfg.DatabaseDSN)
	if err != nil {
		logger.Warnf("⚠️ analysis archive disabled: %v", err)
		return nil
	}
	logger.Info("🗄️ analysis archive enabled")
	return store
}

func provideService(fetcher port.RepoFetcher, advisor port.Advisor, store port.ReportStore) *service.AnalysisService {
	return service.NewAnalysisService(fetcher, advisor, store)
}

func provideHandler(cfg *config.Config, svc *service.AnalysisService) *httpapi.Handler {
	return httpapi.NewHandler(svc, cfg.CORSOrigins)
}

// closeResources 释放持有连接的依赖
func closeResources(container *dig.Container) {
	err := container.Invoke(func(gen port.TextGenerator, store port.ReportStore) {
		for _, r := range []any{gen, store} {
			if c, ok := r.(io.Closer); ok {
				if err := c.Close(); err != nil {
					logger.Warnf("close: %v", err)
				}
			}
		}
	})
	if err != nil {
		logger.Warnf("release resources: %v", err)
	}
}
