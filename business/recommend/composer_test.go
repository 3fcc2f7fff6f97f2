package recommend

import (
	"strings"
	"testing"
	"unicode/utf8"

	"agenticWallet/domain"

	"github.com/stretchr/testify/assert"
)

func testRanked() []ScoreBreakdown {
	return []ScoreBreakdown{
		{CardName: "Sapphire", CashBack: 0, Points: 300, PointsValue: 4.5, Total: 4.5},
		{CardName: "Freedom", CashBack: 3.0, Points: 0, Total: 3.0},
		{CardName: "Basic", CashBack: 1.0, Points: 0, Total: 1.0},
		{CardName: "Spare", CashBack: 0.5, Points: 0, Total: 0.5},
	}
}

func TestCompose_LeadSentenceWithPoints(t *testing.T) {
	out := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "")

	assert.True(t, strings.HasPrefix(out,
		"Sapphire earns $0.00 cash back plus 300 points ($4.50 value) on this travel purchase."))
}

func TestCompose_NoPointsOmitsPointsClause(t *testing.T) {
	ranked := []ScoreBreakdown{{CardName: "Freedom", CashBack: 3.0, Total: 3.0}}
	out := Compose(ranked, domain.PurchaseContext{Category: "dining"}, "")

	assert.Equal(t, "Freedom earns $3.00 cash back on this dining purchase.", out)
}

func TestCompose_NamesAtMostTwoRunnerUps(t *testing.T) {
	out := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "")

	assert.Contains(t, out, "Freedom ($3.00 cash, 0 pts)")
	assert.Contains(t, out, "Basic ($1.00 cash, 0 pts)")
	assert.NotContains(t, out, "Spare")
}

func TestCompose_AppendsSubstantialModelText(t *testing.T) {
	prose := "This card triples points on travel and the point value outpaces flat cash back here."
	out := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, prose)

	assert.True(t, strings.HasSuffix(out, prose))
}

func TestCompose_SkipsTrivialModelText(t *testing.T) {
	deterministic := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "")

	assert.Equal(t, deterministic, Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "ok"))
	assert.Equal(t, deterministic, Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "   "))
}

func TestCompose_TruncatesLongModelText(t *testing.T) {
	long := strings.Repeat("x", 900)
	out := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, long)

	deterministic := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "")
	assert.Equal(t, len(deterministic)+1+300, len(out))
}

func TestCompose_TruncatesOnRuneBoundary(t *testing.T) {
	// a multi-byte rune straddling the cutoff must survive whole or be
	// dropped whole, never split
	long := strings.Repeat("a", 299) + strings.Repeat("é", 10)
	out := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, long)

	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "aé"))

	deterministic := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "")
	appended := strings.TrimPrefix(out, deterministic+" ")
	assert.Equal(t, 300, utf8.RuneCountInString(appended))
}

func TestCompose_MinLengthCountsRunes(t *testing.T) {
	deterministic := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, "")

	// 15 runes but 30 bytes: still trivial, must be skipped
	assert.Equal(t, deterministic,
		Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, strings.Repeat("é", 15)))

	// 21 runes crosses the gate
	substantial := strings.Repeat("é", 21)
	out := Compose(testRanked(), domain.PurchaseContext{Category: "travel"}, substantial)
	assert.True(t, strings.HasSuffix(out, substantial))
}

func TestCompose_EmptyRanked(t *testing.T) {
	assert.Equal(t, "", Compose(nil, domain.PurchaseContext{}, "whatever"))
}
