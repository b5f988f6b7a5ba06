package analyzer

import (
	"slices"
	"strings"

	"code-darpan/internal/domain"
)

// 打分权重：从 BaselineScore 起步，每项最多加一次，总分不超过 MaxScore
const (
	BaselineScore = 60
	MaxScore      = 100

	ReadmePoints   = 10
	ManifestPoints = 10
	IgnorePoints   = 5
	TestPoints     = 15
)

// 缺失项对应的整改建议，按检查顺序排列
const (
	RoadmapAddReadme   = "Add a README.md"
	RoadmapAddManifest = "Add dependency file"
	RoadmapAddIgnore   = "Add .gitignore"
	RoadmapAddTests    = "Add Unit Tests"
)

const (
	readmeFile = "readme.md"
	ignoreFile = ".gitignore"
	testMarker = "test"
)

// manifestFiles 依赖声明文件（小写），任意一个即可
var manifestFiles = []string{
	"requirements.txt",
	"package.json",
	"go.mod",
	"pyproject.toml",
	"cargo.toml",
	"pom.xml",
	"build.gradle",
	"gemfile",
	"composer.json",
}

// Assess 根据根目录文件名打分，文件名不区分大小写
func Assess(files []string) domain.Assessment {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = strings.ToLower(f)
	}

	a := domain.Assessment{
		Score:       BaselineScore,
		Roadmap:     []string{},
		HasReadme:   slices.Contains(names, readmeFile),
		HasManifest: slices.ContainsFunc(names, func(n string) bool { return slices.Contains(manifestFiles, n) }),
		HasIgnore:   slices.Contains(names, ignoreFile),
		HasTests:    slices.ContainsFunc(names, func(n string) bool { return strings.Contains(n, testMarker) }),
	}

	checks := []struct {
		ok     bool
		points int
		todo   string
	}{
		{a.HasReadme, ReadmePoints, RoadmapAddReadme},
		{a.HasManifest, ManifestPoints, RoadmapAddManifest},
		{a.HasIgnore, IgnorePoints, RoadmapAddIgnore},
		{a.HasTests, TestPoints, RoadmapAddTests},
	}
	for _, c := range checks {
		if c.ok {
			a.Score += c.points
		} else {
			a.Roadmap = append(a.Roadmap, c.todo)
		}
	}

	a.Score = min(a.Score, MaxScore)
	return a
}
