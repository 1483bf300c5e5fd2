package analytics

import "github.com/Zuo-Peng/chatstats/internal/derive"

// ResponseTime is a participant's mean reply latency. Samples == 0 means
// the participant never replied within a day and Minutes is meaningless.
type ResponseTime struct {
	Sender  string  `json:"sender"`
	Minutes float64 `json:"minutes"`
	Samples int     `json:"samples"`
}

func (r ResponseTime) Defined() bool {
	return r.Samples > 0
}

// ResponseTimes averages the delay between a message and the next one when
// the sender changes. Replies that open a new day are ignored, so overnight
// gaps do not count as latency. Negative deltas from out-of-order
// timestamps are ignored as well.
func ResponseTimes(c *derive.Conversation) []ResponseTime {
	seconds := make(map[string]float64, 2)
	samples := make(map[string]int, 2)

	msgs := c.Messages
	for i := 0; i+1 < len(msgs); i++ {
		prev, next := msgs[i], msgs[i+1]
		if next.Sender == prev.Sender || next.IsFirstOfDay {
			continue
		}
		delta := next.Timestamp.Sub(prev.Timestamp)
		if delta < 0 {
			continue
		}
		seconds[next.Sender] += delta.Seconds()
		samples[next.Sender]++
	}

	out := make([]ResponseTime, 0, 2)
	for _, p := range c.Participants() {
		rt := ResponseTime{Sender: p, Samples: samples[p]}
		if rt.Samples > 0 {
			rt.Minutes = seconds[p] / float64(rt.Samples) / 60
		}
		out = append(out, rt)
	}
	return out
}
