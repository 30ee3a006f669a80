package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSummary_FirstSentence(t *testing.T) {
	got := extractSummary("Vláda schválila rozpočet. Opozícia protestuje.")
	assert.Equal(t, "Vláda schválila rozpočet.", got)
}

func TestExtractSummary_StripsHTML(t *testing.T) {
	got := extractSummary("<p>Nová <b>správa</b> dňa.</p> Ďalšia veta.")
	assert.Equal(t, "Nová správa dňa.", got)
}

func TestExtractSummary_NoSentenceBoundary(t *testing.T) {
	got := extractSummary("titulok bez bodky")
	assert.Equal(t, "titulok bez bodky", got)
}

func TestExtractSummary_Truncates(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := extractSummary(long)
	assert.Equal(t, 303, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractSummary_Empty(t *testing.T) {
	assert.Equal(t, "", extractSummary(""))
	assert.Equal(t, "", extractSummary("<div></div>"))
}

func TestExtractSummary_DecimalNumberNotABoundary(t *testing.T) {
	got := extractSummary("Inflácia dosiahla 3.5 percenta v júli. Ceny rastú.")
	assert.Equal(t, "Inflácia dosiahla 3.5 percenta v júli.", got)
}

func TestExtractContent_CapsLength(t *testing.T) {
	long := strings.Repeat("b", 6000)
	got := extractContent(long)
	assert.Equal(t, 5000, len([]rune(got)))
}

func TestExtractContent_StripsHTML(t *testing.T) {
	got := extractContent("<article><h1>Nadpis</h1>telo</article>")
	assert.Equal(t, "Nadpistelo", got)
}

func TestFirstSentence_ExclamationAndQuestion(t *testing.T) {
	assert.Equal(t, "Pozor!", firstSentence("Pozor! Toto je test."))
	assert.Equal(t, "Naozaj?", firstSentence("Naozaj? Áno."))
}
