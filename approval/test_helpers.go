package approval

import "github.com/stretchr/testify/mock"

// MatchRequest creates a custom matcher for request arguments in mocks
func MatchRequest(matcher func(Request) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchNotification creates a custom matcher for notification arguments in mocks
func MatchNotification(matcher func(Notification) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchPayload creates a custom matcher for forwarded payloads in mocks
func MatchPayload(matcher func(map[string]any) bool) interface{} {
	return mock.MatchedBy(matcher)
}
