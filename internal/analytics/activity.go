package analytics

import (
	"sort"
	"strconv"

	"github.com/Zuo-Peng/chatstats/internal/derive"
)

type SenderCount struct {
	Sender string `json:"sender"`
	Count  int    `json:"count"`
}

// Bucket is one histogram bin.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// countBySender counts matching messages for both participants, in
// participant order.
func countBySender(c *derive.Conversation, match func(derive.Message) bool) []SenderCount {
	counts := make(map[string]int, 2)
	for _, m := range c.Messages {
		if match(m) {
			counts[m.Sender]++
		}
	}
	out := make([]SenderCount, 0, 2)
	for _, p := range c.Participants() {
		out = append(out, SenderCount{Sender: p, Count: counts[p]})
	}
	return out
}

// byCountDesc orders counts largest first, keeping participant order on ties.
func byCountDesc(counts []SenderCount) []SenderCount {
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

func MessageCounts(c *derive.Conversation) []SenderCount {
	return byCountDesc(countBySender(c, func(derive.Message) bool { return true }))
}

// FirstMessageCounts counts who opened each active day.
func FirstMessageCounts(c *derive.Conversation) []SenderCount {
	return byCountDesc(countBySender(c, func(m derive.Message) bool { return m.IsFirstOfDay }))
}

// WeekdayHistogram has seven bins, Monday first.
func WeekdayHistogram(c *derive.Conversation) []Bucket {
	var counts [7]int
	for _, m := range c.Messages {
		counts[m.Weekday]++
	}
	out := make([]Bucket, 7)
	for i, n := range counts {
		out[i] = Bucket{Label: weekdayNames[i], Count: n}
	}
	return out
}

// DateHistogram has one bin per active date, in calendar order.
func DateHistogram(c *derive.Conversation) []Bucket {
	counts := make(map[string]int)
	for _, m := range c.Messages {
		counts[m.Date.Format(dateLayout)]++
	}
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	out := make([]Bucket, len(labels))
	for i, l := range labels {
		out[i] = Bucket{Label: l, Count: counts[l]}
	}
	return out
}

// HourHistogram has 24 bins for either weekday or weekend messages.
func HourHistogram(c *derive.Conversation, weekend bool) []Bucket {
	var counts [24]int
	for _, m := range c.Messages {
		if m.IsWeekend == weekend {
			counts[m.Hour]++
		}
	}
	out := make([]Bucket, 24)
	for h, n := range counts {
		out[h] = Bucket{Label: strconv.Itoa(h), Count: n}
	}
	return out
}
