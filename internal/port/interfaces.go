package port

import (
	"context"

	"code-darpan/internal/domain"
)

// RepoFetcher 负责从 GitHub 拉取仓库数据
type RepoFetcher interface {
	// Snapshot 拉取元数据、根目录、语言和 README
	// 只有元数据失败才返回错误
	Snapshot(ctx context.Context, ref domain.RepoRef) (*domain.Snapshot, error)
}

// TextGenerator 文本生成后端，输入 prompt，输出自由文本
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor 生成仓库摘要和建议，不返回错误，失败时降级为兜底内容
type Advisor interface {
	Advise(ctx context.Context, readme string, files []string) domain.Insight
}

// ReportStore 存档分析报告
type ReportStore interface {
	Save(ctx context.Context, record *domain.AnalysisRecord) error
	Recent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error)
}
