package flows

import "unicode"

// MinResetScore is the lowest strength score accepted for a new password.
// Advisory gating only; the server remains the authority.
const MinResetScore = 3

// Score rates a password 0 to 5: one point each for length >= 8, a lowercase
// letter, an uppercase letter, a digit, and a symbol.
func Score(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	for _, hit := range []bool{lower, upper, digit, symbol} {
		if hit {
			score++
		}
	}
	return score
}

// Label maps a strength score to its user-facing name.
func Label(score int) string {
	switch {
	case score <= 1:
		return "Very Weak"
	case score == 2:
		return "Weak"
	case score == 3:
		return "Fair"
	case score == 4:
		return "Good"
	default:
		return "Strong"
	}
}
