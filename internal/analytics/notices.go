package analytics

import (
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/derive"
)

// System notices are matched as case-sensitive substrings of the body.
var deletedNotices = []string{
	"You deleted this message",
	"This message was deleted",
}

const missedCallNotice = "Missed voice call"

func IsDeleted(body string) bool {
	for _, s := range deletedNotices {
		if strings.Contains(body, s) {
			return true
		}
	}
	return false
}

func IsMissedCall(body string) bool {
	return strings.Contains(body, missedCallNotice)
}

func DeletedMessages(c *derive.Conversation) []SenderCount {
	return countBySender(c, func(m derive.Message) bool { return IsDeleted(m.Body) })
}

// MissedCalls only sees calls missed by the participant who exported the
// transcript; the other side's misses are not recorded in the export.
func MissedCalls(c *derive.Conversation) []SenderCount {
	return countBySender(c, func(m derive.Message) bool { return IsMissedCall(m.Body) })
}
