package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/lang"
	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversation(t *testing.T, text string) *derive.Conversation {
	t.Helper()
	res, err := parse.Parse(parse.NewTranscript(text, parse.Options{}))
	require.NoError(t, err)
	conv, err := derive.Derive(res.Entries, derive.Options{})
	require.NoError(t, err)
	return conv
}

func english(t *testing.T) lang.Language {
	t.Helper()
	l, err := lang.Default().Lookup("english")
	require.NoError(t, err)
	return l
}

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

const sample = `[01/01/20, 09:00:00 AM] Alice: hi
[01/01/20, 09:05:00 AM] Bob: hello
`

func TestResponseTimes_TwoMessages(t *testing.T) {
	got := ResponseTimes(conversation(t, sample))
	require.Len(t, got, 2)

	assert.Equal(t, "Alice", got[0].Sender)
	assert.False(t, got[0].Defined())
	assert.Equal(t, "Bob", got[1].Sender)
	assert.Equal(t, 1, got[1].Samples)
	assert.InDelta(t, 5.0, got[1].Minutes, 1e-9)
}

func TestResponseTimes_SkipsSameSenderAndFirstOfDay(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: a
[01/01/20, 09:02:00 AM] Alice: b
[01/01/20, 09:06:00 AM] Bob: c
[01/01/20, 09:16:00 AM] Alice: d
[01/02/20, 08:00:00 AM] Bob: next day opener
[01/02/20, 08:03:00 AM] Alice: e
[01/02/20, 08:04:00 AM] Bob: f
`)
	got := ResponseTimes(conv)
	// Alice: 10 and 3 minutes; Bob: 4 and 1 minute, the overnight reply is ignored
	assert.Equal(t, ResponseTime{Sender: "Alice", Minutes: 6.5, Samples: 2}, got[0])
	assert.Equal(t, ResponseTime{Sender: "Bob", Minutes: 2.5, Samples: 2}, got[1])
}

func TestSilenceStreaks_SingleGap(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: a
[01/03/20, 09:00:00 AM] Bob: b
`)
	got := SilenceStreaks(conv, DefaultStreakLimit)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Length)
	assert.Equal(t, day(2), got[0].First)
	assert.Equal(t, day(2), got[0].Last)
	assert.Equal(t, day(3), got[0].End())
}

func TestSilenceStreaks_OrderingAndLimit(t *testing.T) {
	// active: 1, 3, 6, 8, 11 -> silent runs 2 (1), 4-5 (2), 7 (1), 9-10 (2)
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: a
[01/03/20, 09:00:00 AM] Bob: b
[01/06/20, 09:00:00 AM] Alice: c
[01/08/20, 09:00:00 AM] Bob: d
[01/11/20, 09:00:00 AM] Alice: e
`)
	got := SilenceStreaks(conv, 0)
	require.Len(t, got, 4)
	assert.Equal(t, []Streak{
		{First: day(4), Last: day(5), Length: 2},
		{First: day(9), Last: day(10), Length: 2},
		{First: day(2), Last: day(2), Length: 1},
		{First: day(7), Last: day(7), Length: 1},
	}, got)

	assert.Len(t, SilenceStreaks(conv, 3), 3)
}

func TestSilenceStreaks_PartitionCalendarRange(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: a
[01/04/20, 09:00:00 AM] Bob: b
[01/05/20, 09:00:00 AM] Alice: c
[01/20/20, 09:00:00 AM] Bob: d
[01/12/20, 09:00:00 AM] Alice: e
`)
	idx := derive.NewDayIndex(conv.Messages)
	covered := map[time.Time]int{}
	for _, s := range SilenceStreaks(conv, 0) {
		for d := s.First; !d.After(s.Last); d = d.AddDate(0, 0, 1) {
			covered[d]++
		}
		// maximal: neighbours of a run are active days
		assert.True(t, idx.Active(s.First.AddDate(0, 0, -1)))
		assert.True(t, idx.Active(s.End()))
	}
	for _, m := range conv.Messages {
		covered[m.Date]++
		if !m.IsFirstOfDay {
			covered[m.Date]--
		}
	}
	days := idx.Days()
	assert.Len(t, covered, len(days))
	for _, d := range days {
		assert.Equal(t, 1, covered[d], d)
	}
}

func TestSilenceStreaks_NoGaps(t *testing.T) {
	assert.Empty(t, SilenceStreaks(conversation(t, sample), DefaultStreakLimit))
}

func TestDeletedMessages_SubstringMatch(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: This message was deleted.
[01/01/20, 09:01:00 AM] Bob: I saw that This message was deleted thing
[01/01/20, 09:02:00 AM] Bob: this message was deleted
[01/01/20, 09:03:00 AM] Alice: You deleted this message
`)
	assert.Equal(t, []SenderCount{{"Alice", 2}, {"Bob", 1}}, DeletedMessages(conv))
}

func TestMissedCalls(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: Missed voice call
[01/01/20, 09:01:00 AM] Bob: hey
[01/01/20, 09:02:00 AM] Alice: Missed voice call
`)
	assert.Equal(t, []SenderCount{{"Alice", 2}, {"Bob", 0}}, MissedCalls(conv))
}

func TestTopWords_CountsAndTies(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: Pizza tonight? pizza!
[01/01/20, 09:01:00 AM] Bob: the movie then pizza
[01/01/20, 09:02:00 AM] Alice: Missed voice call
[01/01/20, 09:03:00 AM] Alice: movie and popcorn
`)
	got := TopWords(conv, english(t), 30)
	require.Len(t, got, 2)

	assert.Equal(t, "Alice", got[0].Sender)
	assert.Equal(t, []WordCount{{"pizza", 2}, {"tonight", 1}, {"movie", 1}, {"popcorn", 1}}, got[0].Words)
	assert.Equal(t, 5, got[0].Tokens)

	assert.Equal(t, []WordCount{{"movie", 1}, {"pizza", 1}}, got[1].Words)

	limited := TopWords(conv, english(t), 1)
	assert.Equal(t, []WordCount{{"pizza", 2}}, limited[0].Words)
	assert.Equal(t, 5, limited[0].Tokens)
}

func TestTopWords_SumMatchesTokenCount(t *testing.T) {
	conv := conversation(t, `[01/01/20, 09:00:00 AM] Alice: I really really like the sea and the mountains
[01/01/20, 09:01:00 AM] Bob: 3 mountains, 2 seas: that's plenty
`)
	en := english(t)
	for _, wf := range TopWords(conv, en, 0) {
		want := 0
		for _, m := range conv.Messages {
			if m.Sender != wf.Sender {
				continue
			}
			for _, tok := range en.Tokenize(m.Body) {
				if !en.IsStopword(tok) {
					want++
				}
			}
		}
		sum := 0
		for _, w := range wf.Words {
			sum += w.Count
		}
		assert.Equal(t, want, sum, wf.Sender)
		assert.Equal(t, want, wf.Tokens, wf.Sender)
	}
}

func TestHistograms(t *testing.T) {
	// 2020-01-04 is a Saturday
	conv := conversation(t, `[01/03/20, 11:00:00 PM] Alice: a
[01/04/20, 10:00:00 AM] Bob: b
[01/04/20, 10:30:00 AM] Alice: c
`)
	wd := WeekdayHistogram(conv)
	require.Len(t, wd, 7)
	assert.Equal(t, Bucket{"Fri", 1}, wd[4])
	assert.Equal(t, Bucket{"Sat", 2}, wd[5])

	assert.Equal(t, []Bucket{{"2020-01-03", 1}, {"2020-01-04", 2}}, DateHistogram(conv))

	weekday := HourHistogram(conv, false)
	weekend := HourHistogram(conv, true)
	require.Len(t, weekday, 24)
	assert.Equal(t, 1, weekday[23].Count)
	assert.Equal(t, 2, weekend[10].Count)

	assert.Equal(t, []SenderCount{{"Alice", 2}, {"Bob", 1}}, MessageCounts(conv))
	assert.Equal(t, []SenderCount{{"Alice", 1}, {"Bob", 1}}, FirstMessageCounts(conv))
}

func TestBuild_TablesAndIdempotence(t *testing.T) {
	text := sample + `[01/03/20, 10:00:00 AM] Alice: pizza pizza
[01/03/20, 10:07:00 AM] Bob: This message was deleted
`
	build := func() []byte {
		rep, err := Build(conversation(t, text), Options{Language: english(t), TopWords: 5})
		require.NoError(t, err)
		out, err := json.Marshal(struct {
			Report *Report
			Tables []Table
		}{rep, rep.Tables()})
		require.NoError(t, err)
		return out
	}
	first := build()
	assert.Equal(t, first, build())

	rep, err := Build(conversation(t, text), Options{Language: english(t)})
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Messages)

	var names []string
	for _, tb := range rep.Tables() {
		names = append(names, tb.Name)
	}
	assert.Equal(t, []string{
		"messages_by_sender", "weekday", "date", "hour_weekday", "hour_weekend",
		"first_messages", "response_time", "silence_streaks", "deleted_messages",
		"missed_calls", "top_words_Alice", "top_words_Bob",
	}, names)

	streaks, ok := rep.Table("silence_streaks")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"2020-01-03", "1", "2020-01-02", "2020-01-02"}}, streaks.Rows)

	rt, ok := rep.Table("response_time")
	require.True(t, ok)
	assert.Equal(t, []string{"Alice", "n/a", "0"}, rt.Rows[0])
	assert.Equal(t, []string{"Bob", "6.00", "2"}, rt.Rows[1])

	_, ok = rep.Table("nope")
	assert.False(t, ok)
}

func TestBuild_RequiresLanguage(t *testing.T) {
	_, err := Build(conversation(t, sample), Options{})
	assert.Error(t, err)
}

func TestStreak_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Streak{First: day(2), Last: day(4), Length: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"end_date":"2020-01-05","first_silent_day":"2020-01-02","last_silent_day":"2020-01-04","length":3}`, string(out))
}
