package chat

import "strings"

// Farmers type however comes naturally, so keyword matching is bilingual and
// deliberately loose: commands match on substring, while short replies in the
// offer flow match the whole trimmed message to avoid false hits inside names
// or addresses.

var offerListKeywords = []string{"offers", "ऑफर", "list", "सूची"}

var acceptKeywords = []string{"पहला", "first", "हां", "हाँ", "yes", "ठीक"}

var handoverKeywords = []string{"माल", "दे दिया", "delivered", "done", "हो गया"}

// containsAny reports whether the lowercased body contains any keyword.
func containsAny(lowerBody string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerBody, kw) {
			return true
		}
	}
	return false
}

// equalsAny reports whether the lowercased body is exactly one keyword.
func equalsAny(lowerBody string, keywords []string) bool {
	for _, kw := range keywords {
		if lowerBody == kw {
			return true
		}
	}
	return false
}

func isMenuCommand(lowerBody string) bool {
	return strings.Contains(lowerBody, "menu") || strings.Contains(lowerBody, "मेनू")
}

func isProfileCommand(lowerBody string) bool {
	return strings.Contains(lowerBody, "profile") || strings.Contains(lowerBody, "प्रोफाइल")
}

func isHelpCommand(lowerBody string) bool {
	return strings.Contains(lowerBody, "help") || strings.Contains(lowerBody, "मदद")
}

func isStatusCommand(lowerBody string) bool {
	return strings.Contains(lowerBody, "status") || strings.Contains(lowerBody, "स्थिति")
}

func isUpdateNameCommand(lowerBody string) bool {
	return (strings.Contains(lowerBody, "नाम") && strings.Contains(lowerBody, "बदल")) ||
		(strings.Contains(lowerBody, "name") && strings.Contains(lowerBody, "change"))
}

func isUpdateAddressCommand(lowerBody string) bool {
	return (strings.Contains(lowerBody, "पता") && strings.Contains(lowerBody, "बदल")) ||
		(strings.Contains(lowerBody, "address") && strings.Contains(lowerBody, "change"))
}

func isUpdatePincodeCommand(lowerBody string) bool {
	return (strings.Contains(lowerBody, "पिनकोड") && strings.Contains(lowerBody, "बदल")) ||
		(strings.Contains(lowerBody, "pincode") && strings.Contains(lowerBody, "change"))
}
