package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

var (
	supported = []language.Tag{language.English, language.French}
	matcher   = language.NewMatcher(supported)
)

func init() {
	for en, fr := range french {
		if err := message.SetString(language.French, en, fr); err != nil {
			panic(err)
		}
	}
}

// T formats key in the language carried by ctx. English strings are the keys.
func T(ctx context.Context, key string, args ...interface{}) string {
	return Printer(utils.GetLanguageFromContext(ctx)).Sprintf(key, args...)
}

func Printer(lang enum.Language) *message.Printer {
	return message.NewPrinter(Tag(lang))
}

func Tag(lang enum.Language) language.Tag {
	if lang == enum.LanguageFrench {
		return language.French
	}
	return language.English
}

// MatchLanguage picks english or french from an Accept-Language header.
func MatchLanguage(acceptLanguage string) enum.Language {
	if acceptLanguage == "" {
		return enum.LanguageEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return enum.LanguageEnglish
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return enum.LanguageEnglish
	}
	if supported[index] == language.French {
		return enum.LanguageFrench
	}
	return enum.LanguageEnglish
}
