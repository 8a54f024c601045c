package services

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"walletledger/internal/models"
)

// Valid reports whether f is a recognised time filter.
func (f TimeFilter) Valid() bool {
	switch f {
	case TimeFilterAll, TimeFilterDaily, TimeFilterWeekly, TimeFilterMonthly,
		TimeFilterQuarterly, TimeFilterYearly, TimeFilterCustom:
		return true
	}
	return false
}

// WeekStartOf returns the most recent weekStart day on or before d.
func WeekStartOf(d civil.Date, weekStart time.Weekday) civil.Date {
	wd := d.In(time.UTC).Weekday()
	back := (int(wd) - int(weekStart) + 7) % 7
	return d.AddDays(-back)
}

func quarterOf(m time.Month) int {
	return (int(m) - 1) / 3
}

// matcher evaluates a TransactionFilter against a fixed "today".
type matcher struct {
	f         TransactionFilter
	today     civil.Date
	weekStart civil.Date
	query     string
	mode      SearchMode
}

func newMatcher(f TransactionFilter, cfg LedgerConfig) matcher {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	today := civil.DateOf(now())
	return matcher{
		f:         f,
		today:     today,
		weekStart: WeekStartOf(today, cfg.WeekStart),
		query:     strings.ToLower(f.SearchQuery),
		mode:      cfg.SearchMode,
	}
}

func (m matcher) match(tx models.Transaction) bool {
	if m.query != "" && m.mode == SearchModeOverride {
		return m.matchSearch(tx)
	}
	if m.f.WalletID != "" && tx.WalletID != m.f.WalletID {
		return false
	}
	if m.f.CategoryID != "" && tx.CategoryID != m.f.CategoryID {
		return false
	}
	if m.f.Type != "" && tx.Type != m.f.Type {
		return false
	}
	if !m.matchTime(tx.Date) {
		return false
	}
	return m.matchSearch(tx)
}

func (m matcher) matchSearch(tx models.Transaction) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tx.Description), m.query)
}

func (m matcher) matchTime(d civil.Date) bool {
	switch m.f.TimeFilter {
	case TimeFilterDaily:
		return d == m.today
	case TimeFilterWeekly:
		// Open-ended: future-dated entries after the week start also match.
		return !d.Before(m.weekStart)
	case TimeFilterMonthly:
		return d.Year == m.today.Year && d.Month == m.today.Month
	case TimeFilterQuarterly:
		return d.Year == m.today.Year && quarterOf(d.Month) == quarterOf(m.today.Month)
	case TimeFilterYearly:
		return d.Year == m.today.Year
	case TimeFilterCustom:
		if m.f.StartDate != nil && d.Before(*m.f.StartDate) {
			return false
		}
		if m.f.EndDate != nil && d.After(*m.f.EndDate) {
			return false
		}
		return true
	}
	return true
}
