package session

import (
	"fmt"
	"strings"
	"time"
)

// historyLimit bounds the search history to the five most recent entries.
const historyLimit = 5

// SearchHistoryItem is one remembered past query.
type SearchHistoryItem struct {
	ID        string `json:"id"`
	CityName  string `json:"cityName"`
	Country   string `json:"country"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// newHistoryItem builds an entry with a synthetic id derived from the city,
// country and creation time.
func newHistoryItem(city, country string, now time.Time) SearchHistoryItem {
	ms := now.UnixMilli()
	return SearchHistoryItem{
		ID:        fmt.Sprintf("%s-%s-%d", city, country, ms),
		CityName:  city,
		Country:   country,
		Timestamp: ms,
	}
}

// pushHistory inserts item at the front of items. An existing entry for the
// same (city, country) pair, compared case-insensitively, is removed rather
// than duplicated, and the result is truncated to historyLimit entries.
func pushHistory(items []SearchHistoryItem, item SearchHistoryItem) []SearchHistoryItem {
	out := make([]SearchHistoryItem, 0, len(items)+1)
	out = append(out, item)
	for _, h := range items {
		if strings.EqualFold(h.CityName, item.CityName) && strings.EqualFold(h.Country, item.Country) {
			continue
		}
		out = append(out, h)
	}
	if len(out) > historyLimit {
		out = out[:historyLimit]
	}
	return out
}
