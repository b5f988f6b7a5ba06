package insight

import (
	"fmt"
	"strings"
)

// Input limits for the prompt.
const (
	MaxReadmeRunes = 1500
	MaxPromptFiles = 50
)

const promptTemplate = `You are a senior technical interviewer. Analyze this project.
Files: %s
README Snippet: %s

Task:
1. Write a professional 4-sentence summary for a resume.
2. Provide 3 technical improvement tips.

Format:
Summary: [Text]
Tips:
- [Tip 1]
- [Tip 2]
- [Tip 3]
`

// BuildPrompt renders the analysis prompt from a bounded README prefix and
// file list.
func BuildPrompt(readme string, files []string) string {
	if len(files) > MaxPromptFiles {
		files = files[:MaxPromptFiles]
	}
	return fmt.Sprintf(promptTemplate, strings.Join(files, ", "), truncateRunes(readme, MaxReadmeRunes))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
