package analyzer

import (
	"fmt"
	"testing"

	"code-darpan/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		score   int
		roadmap []string
	}{
		{
			name:  "nothing conventional",
			files: []string{"main.py", "lib"},
			score: BaselineScore,
			roadmap: []string{
				RoadmapAddReadme,
				RoadmapAddManifest,
				RoadmapAddIgnore,
				RoadmapAddTests,
			},
		},
		{
			name:    "everything present",
			files:   []string{"readme.md", "package.json", ".gitignore", "tests"},
			score:   100,
			roadmap: []string{},
		},
		{
			name:    "mixed case names",
			files:   []string{"README.md", "Go.Mod", ".GITIGNORE", "Main_Test.go"},
			score:   100,
			roadmap: []string{},
		},
		{
			name:    "readme and tests only",
			files:   []string{"readme.md", "pytest.ini"},
			score:   85,
			roadmap: []string{RoadmapAddManifest, RoadmapAddIgnore},
		},
		{
			name:    "readme with another extension does not count",
			files:   []string{"readme.rst", "requirements.txt"},
			score:   70,
			roadmap: []string{RoadmapAddReadme, RoadmapAddIgnore, RoadmapAddTests},
		},
		{
			name:  "empty listing",
			files: nil,
			score: BaselineScore,
			roadmap: []string{
				RoadmapAddReadme,
				RoadmapAddManifest,
				RoadmapAddIgnore,
				RoadmapAddTests,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(tt.files)
			assert.Equal(t, tt.score, a.Score)
			assert.Equal(t, tt.roadmap, a.Roadmap)
		})
	}
}

func TestAssess_Flags(t *testing.T) {
	a := Assess([]string{"readme.md", "cargo.toml", "contest.txt"})

	assert.True(t, a.HasReadme)
	assert.True(t, a.HasManifest)
	assert.False(t, a.HasIgnore)
	assert.True(t, a.HasTests)
}

func TestAssess_ScoreAlwaysInRange(t *testing.T) {
	optional := []string{"readme.md", "package.json", ".gitignore", "test"}

	for mask := 0; mask < 1<<len(optional); mask++ {
		var files []string
		expected := BaselineScore
		points := []int{ReadmePoints, ManifestPoints, IgnorePoints, TestPoints}
		for i, name := range optional {
			if mask&(1<<i) != 0 {
				files = append(files, name)
				expected += points[i]
			}
		}

		t.Run(fmt.Sprintf("mask=%04b", mask), func(t *testing.T) {
			a := Assess(files)
			assert.GreaterOrEqual(t, a.Score, 0)
			assert.LessOrEqual(t, a.Score, MaxScore)
			assert.Equal(t, min(expected, MaxScore), a.Score)
			assert.Len(t, a.Roadmap, len(optional)-len(files))
		})
	}
}

func TestClassifyPersona(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		langs    domain.LanguageBreakdown
		hasTests bool
		expected domain.Persona
	}{
		{
			name:     "architect",
			score:    95,
			langs:    domain.LanguageBreakdown{"Go": 100},
			hasTests: true,
			expected: domain.PersonaArchitect,
		},
		{
			name:     "high score without tests is not an architect",
			score:    95,
			langs:    domain.LanguageBreakdown{"Go": 100},
			expected: domain.PersonaCodeExplorer,
		},
		{
			name:     "cowboy coder",
			score:    40,
			langs:    domain.LanguageBreakdown{"Python": 1000},
			hasTests: true,
			expected: domain.PersonaCowboyCoder,
		},
		{
			name:     "data wizard",
			score:    80,
			langs:    domain.LanguageBreakdown{"Python": 900, "JavaScript": 100},
			expected: domain.PersonaDataWizard,
		},
		{
			name:     "python heavy but score too low",
			score:    75,
			langs:    domain.LanguageBreakdown{"Python": 900, "JavaScript": 100},
			expected: domain.PersonaCodeExplorer,
		},
		{
			name:     "frontend craftsman",
			score:    70,
			langs:    domain.LanguageBreakdown{"TypeScript": 800, "Go": 200},
			expected: domain.PersonaFrontendCraftsman,
		},
		{
			name:     "frontend tie broken by name",
			score:    70,
			langs:    domain.LanguageBreakdown{"CSS": 500, "Go": 500},
			expected: domain.PersonaFrontendCraftsman,
		},
		{
			name:     "code explorer",
			score:    70,
			langs:    domain.LanguageBreakdown{"Go": 800, "TypeScript": 200},
			expected: domain.PersonaCodeExplorer,
		},
		{
			name:     "no languages",
			score:    70,
			langs:    domain.LanguageBreakdown{},
			expected: domain.PersonaCodeExplorer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyPersona(tt.score, tt.langs, tt.hasTests, false))
		})
	}
}

func TestClassifyPersona_IgnoresReadmeFlag(t *testing.T) {
	langs := domain.LanguageBreakdown{"Python": 60, "Go": 40}
	for _, score := range []int{40, 60, 80, 95} {
		for _, hasTests := range []bool{false, true} {
			assert.Equal(t,
				ClassifyPersona(score, langs, hasTests, false),
				ClassifyPersona(score, langs, hasTests, true),
				"score=%d hasTests=%v", score, hasTests)
		}
	}
}
