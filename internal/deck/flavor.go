package deck

import (
	"strings"
	"unicode/utf8"
)

var mvpLines = []string{
	"They bring the group to life.",
	"This group listens when they speak.",
	"The heartbeat of every conversation.",
	"Without them, the chat would be silent.",
	"They keep the energy going.",
}

var mediaSharerLines = []string{
	"If it happened, they have a photo.",
	"Every memory in this group? Mostly theirs.",
	"The group's official photographer.",
	"They document everything.",
	"Capture first, ask questions later.",
}

var closingLines = []string{
	"A year of conversations, summarized.",
	"Same group. New memories.",
	"Thanks for the chaos.",
	"More than messages. Memories.",
	"Every chat tells a story.",
}

// pickLine chooses flavor text from the first rune of key. The choice is
// cosmetic and only needs to be stable for a given key.
func pickLine(lines []string, key string) string {
	if len(lines) == 0 {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return lines[0]
	}
	return lines[int(r)%len(lines)]
}

func chronotypeLabel(chronotype string) Label {
	t := strings.ToLower(chronotype)
	switch {
	case strings.Contains(t, "night"):
		return Label{Title: chronotype, Desc: "Creatures of the night"}
	case strings.Contains(t, "early"), strings.Contains(t, "morning"):
		return Label{Title: chronotype, Desc: "Rise and text!"}
	case strings.Contains(t, "afternoon"):
		return Label{Title: chronotype, Desc: "Peak productivity hours"}
	case strings.Contains(t, "evening"):
		return Label{Title: chronotype, Desc: "Wind-down texters"}
	default:
		return Label{Title: chronotype, Desc: "Always online energy"}
	}
}

func chaosLabel(index float64) Label {
	switch {
	case index >= 0.7:
		return Label{Title: "Maximum Chaos", Desc: "This group is a meme factory"}
	case index >= 0.5:
		return Label{Title: "Perfectly Chaotic", Desc: "A healthy mix of media and madness"}
	case index >= 0.3:
		return Label{Title: "Controlled Energy", Desc: "Media shared with purpose"}
	default:
		return Label{Title: "Zen Mode", Desc: "More words than media"}
	}
}

func geekLabel(score float64) Label {
	switch {
	case score >= 0.7:
		return Label{Title: "Maximum Geek", Desc: "Your group runs on code and coffee"}
	case score >= 0.4:
		return Label{Title: "Tech Enthusiasts", Desc: "Code is part of the conversation"}
	default:
		return Label{Title: "Casual Coders", Desc: "Some technical discussions spotted"}
	}
}

func vibeLabel(sentiment float64) Label {
	switch {
	case sentiment >= 0.2:
		return Label{Title: "Radiating Positivity", Desc: "Conversations filled with good vibes and positive energy"}
	case sentiment >= 0.05:
		return Label{Title: "Balanced Energy", Desc: "A healthy mix of emotions, keeping things real"}
	case sentiment >= -0.05:
		return Label{Title: "Keeping It Neutral", Desc: "The calm in the storm, steady and thoughtful"}
	case sentiment >= -0.2:
		return Label{Title: "A Few Cloudy Days", Desc: "Some ups and downs, that's what makes it real"}
	default:
		return Label{Title: "Going Through It", Desc: "Deep feelings, the group was there for tough times"}
	}
}
