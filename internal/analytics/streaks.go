package analytics

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/derive"
)

const DefaultStreakLimit = 10

const dateLayout = "2006-01-02"

// Streak is a maximal run of consecutive days without any message.
type Streak struct {
	First  time.Time // first silent day
	Last   time.Time // last silent day
	Length int
}

// End is the day after the last silent day, i.e. the day the conversation
// resumed. Streak tables are keyed by it.
func (s Streak) End() time.Time {
	return s.Last.AddDate(0, 0, 1)
}

func (s Streak) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EndDate string `json:"end_date"`
		First   string `json:"first_silent_day"`
		Last    string `json:"last_silent_day"`
		Length  int    `json:"length"`
	}{
		EndDate: s.End().Format(dateLayout),
		First:   s.First.Format(dateLayout),
		Last:    s.Last.Format(dateLayout),
		Length:  s.Length,
	})
}

// SilenceStreaks groups the silent days between the first and last active
// date into runs, longest first. Equal lengths keep calendar order. A
// limit <= 0 returns every run.
func SilenceStreaks(c *derive.Conversation, limit int) []Streak {
	var runs []Streak
	for _, day := range derive.NewDayIndex(c.Messages).Silent() {
		if n := len(runs); n > 0 && runs[n-1].Last.AddDate(0, 0, 1).Equal(day) {
			runs[n-1].Last = day
			runs[n-1].Length++
			continue
		}
		runs = append(runs, Streak{First: day, Last: day, Length: 1})
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Length > runs[j].Length })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs
}
