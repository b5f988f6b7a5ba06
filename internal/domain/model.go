package domain

import (
	"regexp"
	"strings"
	"time"

	"code-darpan/internal/common"
)

// repoURLPattern 匹配输入中任意位置的 github.com/<owner>/<repo>
var repoURLPattern = regexp.MustCompile(`github\.com/([^/\s?#]+)/([^/\s?#]+)`)

// AnalysisRequest POST /analyze 的请求体
type AnalysisRequest struct {
	URL string `json:"url"`
}

// RepoRef 仓库标识
type RepoRef struct {
	Owner string
	Name  string
}

// FullName 返回 "owner/name"
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL 从 GitHub 链接中解析 owner 和 repo
func ParseRepoURL(raw string) (RepoRef, error) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return RepoRef{}, common.NewError(common.ErrCodeInvalidInput, "Invalid GitHub URL")
	}
	name := strings.TrimSuffix(m[2], ".git")
	if name == "" {
		return RepoRef{}, common.NewError(common.ErrCodeInvalidInput, "Invalid GitHub URL")
	}
	return RepoRef{Owner: m[1], Name: name}, nil
}

// RepoMetadata 报告用到的仓库元数据
type RepoMetadata struct {
	Stars    int
	Forks    int
	Language string // GitHub 没有主语言时为空
}

// LanguageBreakdown 语言名 -> 字节数
type LanguageBreakdown map[string]int

// Total 所有语言字节数之和
func (l LanguageBreakdown) Total() int {
	total := 0
	for _, n := range l {
		total += n
	}
	return total
}

// Share 某语言占总量的比例，空时返回 0
func (l LanguageBreakdown) Share(lang string) float64 {
	total := l.Total()
	if total <= 0 {
		return 0
	}
	return float64(l[lang]) / float64(total)
}

// Dominant 返回字节数最多的语言
// 字节数相同时取字典序最小的名字，结果不受 map 遍历顺序影响
func (l LanguageBreakdown) Dominant() string {
	best, bestBytes := "", -1
	for lang, n := range l {
		if n > bestBytes || (n == bestBytes && lang < best) {
			best, bestBytes = lang, n
		}
	}
	return best
}

// Snapshot 一次分析从 GitHub 拉取到的全部数据
type Snapshot struct {
	Ref       RepoRef
	Metadata  RepoMetadata
	Files     []string // 根目录条目，已转小写
	Languages LanguageBreakdown
	Readme    string
}

// Insight AI 生成的摘要和改进建议
type Insight struct {
	Summary  string
	Tips     []string
	Fallback bool // 使用了兜底内容时为 true
}

// Assessment 规则打分结果
type Assessment struct {
	Score       int
	Roadmap     []string
	HasReadme   bool
	HasManifest bool
	HasIgnore   bool
	HasTests    bool
}

// Persona 开发者画像标签
type Persona string

const (
	PersonaArchitect         Persona = "The Architect 🏛️"
	PersonaCowboyCoder       Persona = "The Cowboy Coder 🤠"
	PersonaDataWizard        Persona = "Data Wizard 🧙‍♂️"
	PersonaFrontendCraftsman Persona = "Frontend Craftsman 🎨"
	PersonaCodeExplorer      Persona = "Code Explorer 🔭"
)

// UnknownLanguage 没有主语言时的占位值
const UnknownLanguage = "Unknown"

// Details 报告中的原始数据部分
type Details struct {
	Stars             int               `json:"stars"`
	Forks             int               `json:"forks"`
	PrimaryLanguage   string            `json:"primary_language"`
	LanguageBreakdown LanguageBreakdown `json:"language_breakdown"`
}

// Report POST /analyze 的响应体
type Report struct {
	Score   int      `json:"score"`
	Summary string   `json:"summary"`
	Roadmap []string `json:"roadmap"`
	Persona Persona  `json:"persona"`
	Details Details  `json:"details"`
}

// AnalysisRecord 存档的分析报告
type AnalysisRecord struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	Owner     string            `json:"owner" gorm:"index:idx_owner_repo"`
	Repo      string            `json:"repo" gorm:"index:idx_owner_repo"`
	Score     int               `json:"score"`
	Persona   string            `json:"persona"`
	Summary   string            `json:"summary" gorm:"type:text"`
	Roadmap   []string          `json:"roadmap" gorm:"serializer:json;type:text"`
	Languages LanguageBreakdown `json:"language_breakdown" gorm:"serializer:json;type:text"`
	CreatedAt time.Time         `json:"created_at" gorm:"index"`
}
