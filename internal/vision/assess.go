package vision

import "strings"

// Keyword lists used to turn the model's prose into a productivity verdict
// and detected context. Matching is case-insensitive substring matching.
var productiveKeywords = []string{
	"coding", "programming", "writing", "document", "spreadsheet",
	"presentation", "research", "studying", "reading", "work",
	"productive", "development", "analysis", "design", "project",
}

var distractionKeywords = []string{
	"social media", "youtube", "entertainment", "game", "gaming",
	"distraction", "unrelated", "non-productive", "streaming", "video",
	"browsing", "shopping", "non-work",
}

var commonApps = []string{
	"Chrome", "Firefox", "Safari", "Edge", "Visual Studio Code", "VS Code",
	"PyCharm", "IntelliJ", "Word", "Excel", "PowerPoint", "Outlook",
	"Slack", "Discord", "Teams", "Zoom", "Terminal", "Command Prompt",
	"Notepad", "TextEdit", "Photoshop", "Illustrator", "Figma", "Sketch",
}

var commonActivities = []string{
	"coding", "programming", "writing", "reading", "browsing",
	"watching", "gaming", "chatting", "messaging", "emailing",
	"researching", "designing", "editing", "analyzing", "presenting",
}

// AssessProductivity decides whether the analysis text describes productive
// activity. An explicit "productive" / "distraction" verdict in the text
// wins; otherwise the keyword counts are compared.
func AssessProductivity(content string) bool {
	lower := strings.ToLower(content)

	if strings.Contains(lower, "productive") && !strings.Contains(lower, "not productive") {
		return true
	}
	if strings.Contains(lower, "distraction") || strings.Contains(lower, "non-productive") {
		return false
	}

	productive := 0
	for _, kw := range productiveKeywords {
		if strings.Contains(lower, kw) {
			productive++
		}
	}
	distracting := 0
	for _, kw := range distractionKeywords {
		if strings.Contains(lower, kw) {
			distracting++
		}
	}
	return productive > distracting
}

// ExtractApplications returns known application names mentioned in the text.
func ExtractApplications(content string) []string {
	return matchAny(content, commonApps)
}

// ExtractActivities returns known activity words mentioned in the text.
func ExtractActivities(content string) []string {
	return matchAny(content, commonActivities)
}

func matchAny(content string, candidates []string) []string {
	lower := strings.ToLower(content)
	detected := []string{}
	for _, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c)) {
			detected = append(detected, c)
		}
	}
	return detected
}
