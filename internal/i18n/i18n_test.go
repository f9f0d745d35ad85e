package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, enum.LanguageEnglish, MatchLanguage(""))
	assert.Equal(t, enum.LanguageEnglish, MatchLanguage("en-CA,en;q=0.9"))
	assert.Equal(t, enum.LanguageFrench, MatchLanguage("fr-CA,fr;q=0.9,en;q=0.8"))
	assert.Equal(t, enum.LanguageFrench, MatchLanguage("fr"))
	assert.Equal(t, enum.LanguageEnglish, MatchLanguage("de-DE"))
	assert.Equal(t, enum.LanguageEnglish, MatchLanguage(";;;"))
}

func TestT(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "Authentication error. Please sign in.", T(ctx, "Authentication error. Please sign in."))

	frCtx := utils.SetLanguageInContext(ctx, enum.LanguageFrench)
	assert.Equal(t, "Erreur d'authentification. Veuillez vous connecter.", T(frCtx, "Authentication error. Please sign in."))

	assert.Equal(t,
		"Requesting `500` records on the `Domain` connection exceeds the `first` limit of 100 records.",
		T(ctx, "Requesting `%d` records on the `%s` connection exceeds the `%s` limit of 100 records.", 500, "Domain", "first"),
	)
}

func TestFrenchCatalogKeepsVerbs(t *testing.T) {
	for en, fr := range french {
		assert.Equal(t, countVerbs(en), countVerbs(fr), en)
	}
}

func countVerbs(s string) int {
	n := 0
	for i := 0; i < len(s)-1; i++ {
		if s[i] == '%' {
			if s[i+1] == '%' {
				i++
				continue
			}
			n++
		}
	}
	return n
}
