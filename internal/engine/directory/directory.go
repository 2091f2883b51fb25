package directory

import (
	"context"
	"strings"
)

// Source materializes the full reference dataset for one lookup. The data
// is fetched fresh per request and never cached across requests.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Find scans newline-delimited rows of "email,cardNumber[,...]" for the
// first row whose first column matches the e-mail, comparing
// case-insensitively with surrounding whitespace trimmed on both sides.
// Rows with fewer than two columns are skipped. The scan stops at the
// first matching row; a matched row with a blank card column counts as no
// match rather than falling through to later rows.
func Find(data []byte, email string) (string, bool) {
	target := strings.ToLower(strings.TrimSpace(email))
	if target == "" {
		return "", false
	}

	for _, line := range strings.Split(string(data), "\n") {
		columns := strings.Split(line, ",")
		if len(columns) < 2 {
			continue
		}
		if strings.ToLower(strings.TrimSpace(columns[0])) == target {
			card := strings.TrimSpace(columns[1])
			if card == "" {
				return "", false
			}
			return card, true
		}
	}

	return "", false
}
