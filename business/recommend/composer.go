package recommend

import (
	"fmt"
	"strings"

	"agenticWallet/domain"
)

// model prose limits, counted in runes
const (
	maxModelTextLen = 300
	minModelTextLen = 20
)

// Compose builds the user-facing explanation: a deterministic lead sentence
// from the top breakdown, a comparison against up to two runner-ups, then the
// model's prose when it is substantial enough. Pure function, no I/O.
func Compose(ranked []ScoreBreakdown, ctx domain.PurchaseContext, modelText string) string {
	if len(ranked) == 0 {
		return ""
	}

	top := ranked[0]

	var b strings.Builder
	fmt.Fprintf(&b, "%s earns $%.2f cash back", top.CardName, top.CashBack)
	if top.Points > 0 {
		fmt.Fprintf(&b, " plus %.0f points ($%.2f value)", top.Points, top.PointsValue)
	}
	fmt.Fprintf(&b, " on this %s purchase.", ctx.Category)

	if len(ranked) > 1 {
		clauses := make([]string, 0, 2)
		for _, alt := range ranked[1:] {
			clauses = append(clauses, fmt.Sprintf("%s ($%.2f cash, %.0f pts)",
				alt.CardName, alt.CashBack, alt.Points))
			if len(clauses) == 2 {
				break
			}
		}
		fmt.Fprintf(&b, " Compared with %s.", strings.Join(clauses, " and "))
	}

	text := strings.TrimSpace(modelText)
	if runes := []rune(text); len(runes) > minModelTextLen {
		if len(runes) > maxModelTextLen {
			text = string(runes[:maxModelTextLen])
		}
		b.WriteString(" ")
		b.WriteString(text)
	}

	return b.String()
}
