package chatclient

// MessageGroup is a run of consecutive messages from one sender within one
// calendar day, used for display.
type MessageGroup struct {
	Sender   int64
	Messages []Message
}

// GroupMessages splits an ordered message sequence into display groups. A
// new group starts whenever the sender changes or the calendar day of the
// timestamp changes. The transform is pure; the same input order always
// yields the same grouping.
func GroupMessages(messages []Message) []MessageGroup {
	if len(messages) == 0 {
		return nil
	}

	groups := make([]MessageGroup, 0, len(messages))
	for _, message := range messages {
		if len(groups) > 0 {
			last := &groups[len(groups)-1]
			lastMessage := last.Messages[len(last.Messages)-1]
			if last.Sender == message.Sender && sameCalendarDay(lastMessage, message) {
				last.Messages = append(last.Messages, message)
				continue
			}
		}
		groups = append(groups, MessageGroup{
			Sender:   message.Sender,
			Messages: []Message{message},
		})
	}

	return groups
}

func sameCalendarDay(a, b Message) bool {
	ay, am, ad := a.Timestamp.Date()
	by, bm, bd := b.Timestamp.Date()
	return ay == by && am == bm && ad == bd
}
