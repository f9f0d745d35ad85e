package enum

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageFrench  Language = "french"
)

func (l Language) String() string {
	return string(l)
}

func (l Language) GraphQL() string {
	if l == LanguageFrench {
		return "FRENCH"
	}
	return "ENGLISH"
}

func LanguageFromGraphQL(s string) Language {
	if s == "FRENCH" {
		return LanguageFrench
	}
	return LanguageEnglish
}

type TfaSendMethod string

const (
	TfaSendMethodEmail TfaSendMethod = "email"
	TfaSendMethodNone  TfaSendMethod = "none"
)

func (t TfaSendMethod) String() string {
	return string(t)
}

func (t TfaSendMethod) GraphQL() string {
	if t == TfaSendMethodEmail {
		return "EMAIL"
	}
	return "NONE"
}

func TfaSendMethodFromGraphQL(s string) TfaSendMethod {
	if s == "EMAIL" {
		return TfaSendMethodEmail
	}
	return TfaSendMethodNone
}
