package indicator

import (
	"os"
	"strings"
)

type locale string

const (
	localeEnglish locale = "en"
	localeRussian locale = "ru"
)

type messages struct {
	corrected string
	undone    string
	paused    string
	resumed   string
}

func notificationMessagesFromEnv() messages {
	return notificationMessages(resolveLocale(os.Getenv("LANG")))
}

func resolveLocale(raw string) locale {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(raw, "ru") {
		return localeRussian
	}
	return localeEnglish
}

func notificationMessages(tag locale) messages {
	switch tag {
	case localeRussian:
		return messages{
			corrected: "Раскладка исправлена",
			undone:    "Исправление отменено",
			paused:    "Автокоррекция выключена",
			resumed:   "Автокоррекция включена",
		}
	default:
		return messages{
			corrected: "Layout corrected",
			undone:    "Correction undone",
			paused:    "Auto-correct paused",
			resumed:   "Auto-correct resumed",
		}
	}
}
