package roster

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fundboard/internal/models"
	"fundboard/internal/repository"
)

// testAccountMarker prefixes the titles of sandbox accounts that must
// never appear on the dashboard.
const testAccountMarker = "TEST NEW"

var hundred = decimal.NewFromInt(100)

// Options carries the per-deployment knobs of the post-processor.
type Options struct {
	// HouseAccountEmail is the sentinel address whose rows classify as
	// House Account regardless of challenge-type title.
	HouseAccountEmail string
}

// Process turns raw joined rows plus the payout map into final roster
// rows. It is a pure function: same input, same output, no hidden state.
//
// Fallback chains per row: starting balance comes from the earliest
// daily balance, else from the digits of the category label; current
// equity is the first usable value among margin equity, latest daily
// equity and challenge balance. A value that fails numeric parsing or
// parses to exactly zero is treated as absent throughout; zero and
// "no data" are deliberately conflated.
func Process(rows []models.RawRosterRow, payouts repository.PayoutMap, opts Options) []models.RosterRow {
	processed := make([]models.RosterRow, 0, len(rows))

	for _, row := range rows {
		title := deref(row.Title)
		if strings.HasPrefix(title, testAccountMarker) {
			continue
		}

		email := deref(row.Email)
		phase := ClassifyPhase(title)
		if opts.HouseAccountEmail != "" && email == opts.HouseAccountEmail {
			phase = models.PhaseHouseAccount
		}

		startingBalance := coerceNumeric(row.AccountSize)
		if startingBalance == nil {
			startingBalance = categoryAmount(row.Category)
		}

		currentEquity := coerceNumeric(row.MarginEquity)
		if currentEquity == nil {
			currentEquity = coerceNumeric(row.DailyEquity)
		}
		if currentEquity == nil {
			currentEquity = coerceNumeric(row.ChallengeBalance)
		}

		change := decimal.Zero
		if startingBalance != nil && currentEquity != nil {
			change = currentEquity.Sub(*startingBalance)
		}

		gainLossPct := 0.0
		if startingBalance != nil {
			gainLossPct = change.Div(*startingBalance).Mul(hundred).Round(3).InexactFloat64()
		}

		fraction, ok := payouts[row.Login]
		if !ok {
			fraction = repository.DefaultPayoutFraction
		}

		potLiability := decimal.Zero
		if phase == models.PhaseFunded && change.IsPositive() {
			potLiability = change.Mul(fraction)
		}

		processed = append(processed, models.RosterRow{
			Login:           row.Login,
			Category:        deref(row.Category),
			Phase:           phase,
			FirstName:       deref(row.FirstName),
			LastName:        deref(row.LastName),
			Email:           email,
			Status:          deref(row.Status),
			StartingBalance: orZero(startingBalance),
			CurrentEquity:   orZero(currentEquity),
			Change:          change,
			GainLossPct:     gainLossPct,
			PayoutPct:       fraction.Mul(hundred).InexactFloat64(),
			PotLiability:    potLiability,
		})
	}

	return processed
}

// Sort orders a processed roster by phase precedence, then by descending
// gain/loss within each phase. The sort is stable.
func Sort(rows []models.RosterRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Phase.Rank(), rows[j].Phase.Rank()
		if ri != rj {
			return ri < rj
		}
		return rows[i].GainLossPct > rows[j].GainLossPct
	})
}

var digitRunPattern = regexp.MustCompile(`[0-9]+`)

// categoryAmount extracts the account size embedded in a category label,
// e.g. "$ 100,000" -> 100000. Labels without digits yield nil.
func categoryAmount(category *string) *decimal.Decimal {
	if category == nil {
		return nil
	}
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(*category))
	match := digitRunPattern.FindString(cleaned)
	if match == "" {
		return nil
	}
	value, err := decimal.NewFromString(match)
	if err != nil || value.IsZero() {
		return nil
	}
	return &value
}

// coerceNumeric applies the shared coercion rule: unparseable input and
// exact zero are both absent.
func coerceNumeric(raw *string) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	value, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil || value.IsZero() {
		return nil
	}
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
