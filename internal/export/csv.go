// Package export writes the newsletter subscriber CSV used for manual
// mail-merge runs. Each row carries a pre-minted unsubscribe link so the
// merge tool never needs to know about tokens.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/forgepoint/site-server/internal/domain"
)

// Header is the CSV column layout, in order.
var Header = []string{"email", "status", "subscribed_at", "confirmed_at", "unsubscribe_link"}

// LinkFunc mints the unsubscribe link for one address.
type LinkFunc func(email string) (string, error)

// WriteCSV writes one row per subscriber to w. By default only confirmed
// subscribers are included; includeAll exports every status. Rows are
// sorted by email so consecutive exports diff cleanly. Returns the number
// of data rows written.
func WriteCSV(w io.Writer, subs []domain.Subscriber, linkFor LinkFunc, includeAll bool) (int, error) {
	sorted := make([]domain.Subscriber, len(subs))
	copy(sorted, subs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Email < sorted[j].Email })

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	rows := 0
	for _, sub := range sorted {
		if !includeAll && !sub.IsConfirmed() {
			continue
		}

		link, err := linkFor(sub.Email)
		if err != nil {
			return rows, fmt.Errorf("minting unsubscribe link for %s: %w", sub.Email, err)
		}

		record := []string{
			sub.Email,
			string(sub.Status),
			formatTime(sub.SubscribedAt),
			formatTimePtr(sub.ConfirmedAt),
			link,
		}
		if err := cw.Write(record); err != nil {
			return rows, fmt.Errorf("writing row for %s: %w", sub.Email, err)
		}
		rows++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("flushing csv: %w", err)
	}
	return rows, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
