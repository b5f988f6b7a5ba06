package analyzer

import (
	"slices"

	"code-darpan/internal/domain"
)

var frontendLanguages = []string{"JavaScript", "TypeScript", "HTML", "CSS"}

const pythonHeavyShare = 0.4

// ClassifyPersona 根据最终分数和语言分布判断画像，命中第一条规则即返回
// hasReadme 目前不参与判断，留给后续规则
func ClassifyPersona(score int, langs domain.LanguageBreakdown, hasTests, hasReadme bool) domain.Persona {
	switch {
	case score >= 90 && hasTests:
		return domain.PersonaArchitect
	case score < 50:
		return domain.PersonaCowboyCoder
	case langs.Share("Python") > pythonHeavyShare && score > 75:
		return domain.PersonaDataWizard
	case slices.Contains(frontendLanguages, langs.Dominant()):
		return domain.PersonaFrontendCraftsman
	default:
		return domain.PersonaCodeExplorer
	}
}
