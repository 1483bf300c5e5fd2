package analytics

import (
	"sort"

	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/lang"
)

const DefaultTopWords = 30

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type WordFrequency struct {
	Sender string      `json:"sender"`
	Words  []WordCount `json:"words"`
	Tokens int         `json:"tokens"` // counted tokens before the top-n cut
}

// TopWords counts each participant's non-stop-word tokens, skipping missed
// call notices, and keeps the n most frequent. Ties keep the order in which
// words were first used.
func TopWords(c *derive.Conversation, l lang.Language, n int) []WordFrequency {
	out := make([]WordFrequency, 0, 2)
	for _, p := range c.Participants() {
		counts := make(map[string]int)
		var order []string
		total := 0
		for _, m := range c.Messages {
			if m.Sender != p || IsMissedCall(m.Body) {
				continue
			}
			for _, tok := range l.Tokenize(m.Body) {
				if l.IsStopword(tok) {
					continue
				}
				if counts[tok] == 0 {
					order = append(order, tok)
				}
				counts[tok]++
				total++
			}
		}

		words := make([]WordCount, len(order))
		for i, w := range order {
			words[i] = WordCount{Word: w, Count: counts[w]}
		}
		sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })
		if n > 0 && len(words) > n {
			words = words[:n]
		}
		out = append(out, WordFrequency{Sender: p, Words: words, Tokens: total})
	}
	return out
}
