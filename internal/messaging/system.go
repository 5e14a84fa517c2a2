package messaging

import "strings"

// sandboxPhrases are Twilio sandbox join/leave commands and confirmations.
// They reach the webhook like any farmer message and must be acknowledged
// without driving the conversation state machine.
var sandboxPhrases = []string{
	"join",
	"stop",
	"sandbox",
	"you are all set",
}

// IsSystemMessage reports whether an inbound body is a platform control
// message rather than farmer input.
func IsSystemMessage(body string) bool {
	if strings.HasPrefix(body, "Twilio") {
		return true
	}
	lower := strings.ToLower(body)
	for _, phrase := range sandboxPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
