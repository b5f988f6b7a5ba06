package service

import (
	"context"
	"time"

	"code-darpan/internal/adapter/analyzer"
	"code-darpan/internal/common"
	"code-darpan/internal/domain"
	"code-darpan/internal/port"

	logger "github.com/sirupsen/logrus"
)

const archiveTimeout = 5 * time.Second

// AnalysisService 把仓库链接变成分析报告
type AnalysisService struct {
	fetcher port.RepoFetcher
	advisor port.Advisor
	store   port.ReportStore
	nowFunc func() time.Time
}

// NewAnalysisService 创建分析服务，store 为 nil 时不存档
func NewAnalysisService(fetcher port.RepoFetcher, advisor port.Advisor, store port.ReportStore) *AnalysisService {
	return &AnalysisService{
		fetcher: fetcher,
		advisor: advisor,
		store:   store,
		nowFunc: time.Now,
	}
}

// Analyze 执行完整分析流程
// 只返回 INVALID_INPUT、NOT_FOUND，以及查询仓库时 ctx 结束产生的 context 错误，其余一律降级
func (s *AnalysisService) Analyze(ctx context.Context, rawURL string) (*domain.Report, error) {
	// 1. 解析链接
	ref, err := domain.ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}

	log := logger.WithFields(logger.Fields{"owner": ref.Owner, "repo": ref.Name})
	log.Info("🔍 analyzing repository")

	// 2. 拉取仓库数据
	snap, err := s.fetcher.Snapshot(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			log.Infof("👋 request cancelled during lookup: %v", err)
			return nil, err
		}
		if !common.HasCode(err, common.ErrCodeNotFound) {
			err = common.WrapError(common.ErrCodeNotFound, "Repo not found", err)
		}
		log.Infof("❌ repository lookup failed: %v", err)
		return nil, err
	}

	// 3. 规则打分 + AI 摘要 + 画像
	assessment := analyzer.Assess(snap.Files)
	insight := s.advisor.Advise(ctx, snap.Readme, snap.Files)
	persona := analyzer.ClassifyPersona(assessment.Score, snap.Languages, assessment.HasTests, assessment.HasReadme)

	// 4. 组装响应
	report := Assemble(snap, assessment, insight, persona)
	log.WithFields(logger.Fields{
		"score":    report.Score,
		"persona":  report.Persona,
		"fallback": insight.Fallback,
	}).Info("✅ analysis complete")

	// 5. 存档（可选）
	s.archive(ctx, ref, report)
	return report, nil
}

// Recent 按时间倒序列出存档
func (s *AnalysisService) Recent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	if s.store == nil {
		return nil, common.NewError(common.ErrCodeNotFound, "Analysis history is disabled")
	}
	return s.store.Recent(ctx, limit)
}

// Assemble 组装响应，roadmap 先放规则整改项，再放 AI 建议
func Assemble(snap *domain.Snapshot, a domain.Assessment, insight domain.Insight, persona domain.Persona) *domain.Report {
	roadmap := make([]string, 0, len(a.Roadmap)+len(insight.Tips))
	roadmap = append(roadmap, a.Roadmap...)
	roadmap = append(roadmap, insight.Tips...)

	primary := snap.Metadata.Language
	if primary == "" {
		primary = domain.UnknownLanguage
	}

	langs := snap.Languages
	if langs == nil {
		langs = domain.LanguageBreakdown{}
	}

	return &domain.Report{
		Score:   min(a.Score, analyzer.MaxScore),
		Summary: insight.Summary,
		Roadmap: roadmap,
		Persona: persona,
		Details: domain.Details{
			Stars:             snap.Metadata.Stars,
			Forks:             snap.Metadata.Forks,
			PrimaryLanguage:   primary,
			LanguageBreakdown: langs,
		},
	}
}

// archive 配置了 store 时存档，失败只记日志，不影响调用方
func (s *AnalysisService) archive(ctx context.Context, ref domain.RepoRef, report *domain.Report) {
	if s.store == nil {
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	record := &domain.AnalysisRecord{
		Owner:     ref.Owner,
		Repo:      ref.Name,
		Score:     report.Score,
		Persona:   string(report.Persona),
		Summary:   report.Summary,
		Roadmap:   report.Roadmap,
		Languages: report.Details.LanguageBreakdown,
		CreatedAt: s.nowFunc(),
	}
	if err := s.store.Save(saveCtx, record); err != nil {
		logger.WithFields(logger.Fields{"owner": ref.Owner, "repo": ref.Name}).
			Warnf("⚠️ failed to archive analysis: %v", err)
	}
}
