package derive

import (
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(sender string, ts time.Time, body string) parse.Entry {
	return parse.Entry{Sender: sender, Timestamp: ts, Body: body}
}

func at(day, hour, min int) time.Time {
	return time.Date(2020, 1, day, hour, min, 0, 0, time.UTC)
}

func TestResolveIdentities_OrderOfFirstAppearance(t *testing.T) {
	entries := []parse.Entry{
		entry("Bob", at(1, 9, 0), "hi"),
		entry("Bob", at(1, 9, 1), "there"),
		entry("Alice", at(1, 9, 2), "hello"),
	}
	for i := 0; i < 3; i++ {
		ids, err := ResolveIdentities(entries)
		require.NoError(t, err)
		assert.Equal(t, Identities{First: "Bob", Second: "Alice"}, ids)
	}
}

func TestResolveIdentities_Errors(t *testing.T) {
	_, err := ResolveIdentities(nil)
	assert.ErrorIs(t, err, ErrEmptyTranscript)

	_, err = ResolveIdentities([]parse.Entry{entry("Alice", at(1, 9, 0), "a"), entry("Alice", at(1, 9, 1), "b")})
	assert.ErrorIs(t, err, ErrTooFewParticipants)

	_, err = ResolveIdentities([]parse.Entry{
		entry("Alice", at(1, 9, 0), "a"),
		entry("Bob", at(1, 9, 1), "b"),
		entry("Carol", at(1, 9, 2), "c"),
	})
	assert.ErrorIs(t, err, ErrTooManyParticipants)
	assert.Contains(t, err.Error(), "Carol")
}

func TestDerive_DerivedFields(t *testing.T) {
	// 2020-01-04 is a Saturday, 2020-01-06 a Monday
	conv, err := Derive([]parse.Entry{
		entry("Alice", time.Date(2020, 1, 4, 23, 15, 0, 0, time.UTC), "good  night you"),
		entry("Bob", time.Date(2020, 1, 6, 7, 0, 0, 0, time.UTC), ""),
	}, Options{})
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)

	sat := conv.Messages[0]
	assert.Equal(t, 0, sat.Seq)
	assert.Equal(t, time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC), sat.Date)
	assert.Equal(t, 23, sat.Hour)
	assert.Equal(t, 5, sat.Weekday)
	assert.True(t, sat.IsWeekend)
	assert.Equal(t, 3, sat.WordCount)

	mon := conv.Messages[1]
	assert.Equal(t, 0, mon.Weekday)
	assert.False(t, mon.IsWeekend)
	assert.Equal(t, 0, mon.WordCount)
	assert.Equal(t, []string{"Alice", "Bob"}, conv.Participants())
}

func TestDerive_FirstOfDayOncePerDate(t *testing.T) {
	// day 1 reappears after day 2 in file order
	conv, err := Derive([]parse.Entry{
		entry("Alice", at(1, 9, 0), "a"),
		entry("Bob", at(1, 9, 5), "b"),
		entry("Alice", at(2, 8, 0), "c"),
		entry("Bob", at(1, 23, 0), "d"),
		entry("Alice", at(2, 9, 0), "e"),
		entry("Bob", at(3, 9, 0), "f"),
	}, Options{})
	require.NoError(t, err)

	var flags []bool
	perDate := map[time.Time]int{}
	for _, m := range conv.Messages {
		flags = append(flags, m.IsFirstOfDay)
		if m.IsFirstOfDay {
			perDate[m.Date]++
		}
	}
	assert.Equal(t, []bool{true, false, true, false, false, true}, flags)
	assert.Len(t, perDate, 3)
	for day, n := range perDate {
		assert.Equal(t, 1, n, day)
	}
}

func TestDerive_Pseudonymize(t *testing.T) {
	conv, err := Derive([]parse.Entry{
		entry("Alice", at(1, 9, 0), "a"),
		entry("Bob", at(1, 9, 5), "b"),
		entry("Alice", at(1, 9, 6), "c"),
	}, Options{Pseudonymize: true})
	require.NoError(t, err)
	assert.Equal(t, "user_1", conv.FirstUser)
	assert.Equal(t, "user_2", conv.SecondUser)
	assert.Equal(t, "user_1", conv.Messages[2].Sender)
	assert.Equal(t, "user_2", conv.Messages[1].Sender)
}

func TestDayIndex_SilentDays(t *testing.T) {
	conv, err := Derive([]parse.Entry{
		entry("Alice", at(5, 9, 0), "a"),
		entry("Bob", at(1, 9, 5), "b"),
		entry("Alice", at(3, 9, 6), "c"),
	}, Options{})
	require.NoError(t, err)

	idx := NewDayIndex(conv.Messages)
	assert.Equal(t, at(1, 0, 0), idx.First)
	assert.Equal(t, at(5, 0, 0), idx.Last)
	assert.Len(t, idx.Days(), 5)
	assert.Equal(t, []time.Time{at(2, 0, 0), at(4, 0, 0)}, idx.Silent())
	assert.True(t, idx.Active(at(3, 0, 0)))
	assert.False(t, idx.Active(at(4, 0, 0)))
}

func TestDayIndex_Empty(t *testing.T) {
	idx := NewDayIndex(nil)
	assert.Nil(t, idx.Days())
	assert.Nil(t, idx.Silent())
}
