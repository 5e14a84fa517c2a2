package chat

import (
	"fmt"
	"strings"

	"github.com/farmfast/platform/internal/grading"
	"github.com/farmfast/platform/internal/listings"
	"github.com/farmfast/platform/internal/offers"
)

// Outbound message texts. Hindi copy is part of the product surface; keep
// wording changes deliberate.

const (
	msgWelcome = "🌾 *FarmFast में आपका स्वागत है!*\n\nपहले अपना नाम बताएं:"

	msgStaleNotice = "👋 नमस्ते! आपका पिछला सत्र समाप्त हो गया था।\n\n📸 अपनी फसल की फोटो भेजें और बेचना शुरू करें!\n\n💡 *मेनू* लिखें प्रोफाइल देखने के लिए"

	msgNameTooShort = "❌ कृपया अपना पूरा नाम बताएं।"

	msgAddressTooShort = "❌ कृपया पूरा पता बताएं। उदाहरण: गाँव/शहर, तहसील, जिला, राज्य"

	msgAddressSaved = "✅ पता सहेजा गया!\n\n📮 अब अपना पिनकोड भेजें (6 अंक):\n\nउदाहरण: 411001"

	msgInvalidPincode = "❌ कृपया सही 6 अंकों का पिनकोड भेजें। उदाहरण: 411001"

	msgRegistrationFailed = "❌ रजिस्ट्रेशन में समस्या आई। कृपया दोबारा कोशिश करें।"

	msgProcessing = "आपकी फसल की जांच हो रही है... कृपया 10 सेकंड प्रतीक्षा करें। ⏳"

	msgGradingFailed = "❌ माफ करें, फोटो की जांच में समस्या आई।\n\nकृपया दोबारा कोशिश करें:\n📸 अच्छी रोशनी में साफ फोटो भेजें\n📷 पूरी फसल दिखनी चाहिए\n\nफिर से फोटो भेजें!"

	msgPincodeNotFound = "❌ पिनकोड नहीं मिला। कृपया दूसरा पिनकोड भेजें या अपना शहर का नाम भेजें।"

	msgInvalidQuantity = "❌ कृपया सही संख्या भेजें। उदाहरण: 500"

	msgQuantityTooLow = "⚠️ कम से कम 50 किलो होना चाहिए। कृपया फिर से भेजें।"

	msgNoPendingOffers = "❌ अभी कोई पेंडिंग ऑफर नहीं है।\n\n⏳ नए ऑफर का इंतजार करें।"

	msgHandoverPrompt = "📦 माल देने के बाद \"माल दे दिया\" लिखकर भेजें।\n\n❓ कोई समस्या है? \"help\" लिखें।"

	msgHandoverComplete = "🎉 *बधाई हो!*\n\n✅ पेमेंट आपके खाते में भेज दिया गया है।\n\n💰 30 सेकंड में पैसा आ जाएगा।\n\n🙏 FarmFast इस्तेमाल करने के लिए धन्यवाद!\n\nअगली बार फिर से फसल बेचने के लिए फोटो भेजें। 📸"

	msgRegisterFirst = "❌ पहले रजिस्ट्रेशन पूरा करें।"

	msgMenu = "📋 *FarmFast मेनू*\n\n*प्रोफाइल देखें:*\n\"प्रोफाइल\" या \"profile\" लिखें\n\n*प्रोफाइल अपडेट करें:*\n• नाम बदलें: \"नाम बदलो [नया नाम]\"\n• पता बदलें: \"पता बदलो [नया पता]\"\n• पिनकोड बदलें: \"पिनकोड बदलो [नया पिनकोड]\"\n\n*उदाहरण:*\nनाम बदलो राज कुमार\nपता बदलो गाँव खेड़ा, पुणे, महाराष्ट्र\nपिनकोड बदलो 411001\n\n*फसल बेचने के लिए:*\nफोटो भेजें 📸"

	msgUpdateNamePrompt = "❌ कृपया नया नाम बताएं।\n\nउदाहरण: नाम बदलो राज कुमार"

	msgUpdateAddressPrompt = "❌ कृपया पूरा पता बताएं।\n\nउदाहरण: पता बदलो गाँव खेड़ा, पुणे, महाराष्ट्र"

	msgUpdatePincodePrompt = "❌ कृपया सही 6 अंकों का पिनकोड बताएं।\n\nउदाहरण: पिनकोड बदलो 411001"

	msgUpdatePincodeNotFound = "❌ पिनकोड नहीं मिला। कृपया सही पिनकोड बताएं।"

	msgHelpRegistered = "*FarmFast में आपका स्वागत है!* 🌾\n\n*फसल बेचने के लिए:*\n1️⃣ अपनी फसल की फोटो भेजें 📸\n2️⃣ मैं 10 सेकंड में क्वालिटी चेक करूंगा ✅\n3️⃣ कितने किलो बेचना है बताएं 📦\n4️⃣ खरीददारों को लिस्टिंग भेजी जाएगी 🎯\n5️⃣ ऑफर मिलने पर सूचना मिलेगी 📱\n\n*अभी फोटो भेजें!* 🚀\n\n💡 *मेनू* लिखें प्रोफाइल देखने/अपडेट करने के लिए"

	msgHelpUnregistered = "*FarmFast में आपका स्वागत है!* 🌾\n\n*पहली बार इस्तेमाल कर रहे हैं?*\n1️⃣ अपना नाम बताएं\n2️⃣ अपना पूरा पता भेजें 📍\n3️⃣ अपना पिनकोड भेजें 📮\n4️⃣ फसल की फोटो भेजें 📸\n5️⃣ मैं क्वालिटी चेक करूंगा ✅\n6️⃣ खरीददारों से ऑफर मिलेंगे 💰\n\n*शुरू करने के लिए अपना नाम भेजें!*"

	msgNoActiveListing = "❌ कोई सक्रिय लिस्टिंग नहीं है।\n\nनई लिस्टिंग बनाने के लिए फसल की फोटो भेजें। 📸"

	msgDefaultRegistered = "👋 नमस्ते! मैं FarmFast हूँ। 🌾\n\n📸 अपनी फसल की फोटो भेजें और मैं तुरंत:\n✅ क्वालिटी चेक करूंगा\n💰 सही भाव बताऊंगा\n🎯 खरीददारों से ऑफर दिलाऊंगा\n\n*अभी फोटो भेजें!*\n\n💡 *मेनू* लिखें प्रोफाइल देखने के लिए\n(मदद के लिए \"help\" टाइप करें)"

	msgDefaultUnregistered = "👋 नमस्ते! मैं FarmFast हूँ। 🌾\n\n*पहले अपना नाम बताएं:*\n\n(मदद के लिए \"help\" टाइप करें)"
)

func formatAskAddress(name string) string {
	return fmt.Sprintf("धन्यवाद %s जी! 🙏\n\n📍 अब अपना पूरा पता बताएं:\n\nउदाहरण: गाँव/शहर, तहसील, जिला, राज्य", name)
}

func formatRegistrationComplete(name, address, pincode string) string {
	return fmt.Sprintf("✅ रजिस्ट्रेशन पूरा हुआ!\n\n👤 नाम: %s\n📍 पता: %s\n📮 पिनकोड: %s\n\n📸 अब अपनी फसल की फोटो भेजें और बेचना शुरू करें! 🚀\n\n💡 *मेनू* लिखें प्रोफाइल अपडेट करने के लिए", name, address, pincode)
}

func formatGradeResult(result *grading.Result, registered bool) string {
	gradeEmoji := "👍"
	switch result.Grade {
	case grading.GradeA:
		gradeEmoji = "🌟"
	case grading.GradeB:
		gradeEmoji = "✅"
	}
	next := "📍 अब अपना पिनकोड भेजें (जैसे: 411001)"
	if registered {
		next = "📦 अब कितने किलो बेचना है? कृपया संख्या भेजें (जैसे: 500)"
	}
	return fmt.Sprintf("%s *ग्रेड %s*\n\n%s\n\n*उचित भाव:* ₹%.0f-%.0f/किलो\n*ताजगी:* %d दिन\n\n%s",
		gradeEmoji, result.Grade, result.HindiSummary,
		result.PriceRangeMin, result.PriceRangeMax, result.ShelfLifeDays, next)
}

func formatLocationSaved(displayName string) string {
	return fmt.Sprintf("✅ स्थान सहेजा गया: %s\n\n📦 अब कितने किलो बेचना है? कृपया संख्या भेजें (जैसे: 500)", displayName)
}

func formatListingLive(quantityKg, buyerCount int) string {
	audience := "आस-पास के"
	if buyerCount > 0 {
		audience = fmt.Sprintf("%d", buyerCount)
	}
	return fmt.Sprintf("✅ बढ़िया! आपकी %d किलो की लिस्टिंग %s खरीददारों को भेज दी गई है। 🎯\n\n⏰ 1 घंटे में ऑफर मिलने शुरू हो जाएंगे।\n\n📱 जैसे ही कोई ऑफर आएगा, मैं आपको तुरंत बताऊंगा।\n\n*नोट:* WhatsApp खुला रखें ताकि ऑफर की सूचना मिल सके।", quantityKg, audience)
}

func formatOfferList(pending []offers.Offer) string {
	var b strings.Builder
	b.WriteString("📋 *आपके ऑफर:*\n\n")
	for i, offer := range pending {
		fmt.Fprintf(&b, "*%d.* %s\n   💰 ₹%.0f/किलो (कुल ₹%.0f)\n   ⏰ %s\n\n",
			i+1, offer.BuyerName, offer.PricePerKg, offer.TotalAmount, offer.PickupTime)
	}
	b.WriteString("✅ ऑफर स्वीकार करने के लिए नंबर भेजें (जैसे: 1, 2, 3)")
	return b.String()
}

func formatOfferSummary(pending []offers.Offer) string {
	var b strings.Builder
	b.WriteString("📋 *आपके ऑफर:*\n\n")
	for i, offer := range pending {
		fmt.Fprintf(&b, "*%d.* %s — ₹%.0f/किलो\n", i+1, offer.BuyerName, offer.PricePerKg)
	}
	b.WriteString("\n✅ ऑफर स्वीकार करने के लिए नंबर भेजें (जैसे: 1)\n💡 \"ऑफर\" लिखें पूरी जानकारी देखने के लिए")
	return b.String()
}

func formatOfferAccepted(offer offers.Offer) string {
	return fmt.Sprintf("✅ ऑफर स्वीकार किया गया!\n\n*खरीददार:* %s\n*भाव:* ₹%.0f/किलो\n*कुल:* ₹%.0f\n\n💰 खरीददार ने पेमेंट जमा कर दिया है।\n📞 खरीददार आपसे जल्द संपर्क करेगा।\n\nमाल देने के बाद \"माल दे दिया\" लिखकर भेजें, तो पैसा तुरंत आपके खाते में आ जाएगा। 🎉",
		offer.BuyerName, offer.PricePerKg, offer.TotalAmount)
}

// FormatOfferNotification is the push sent to the farmer when a buyer places
// a new offer through the API.
func FormatOfferNotification(offer offers.Offer, listing *listings.Listing, offerCount int) string {
	quality := "अच्छा"
	if offer.PricePerKg >= listing.PriceRangeMax {
		quality = "बहुत अच्छा"
	}
	buyerMessage := ""
	if offer.Message != "" {
		buyerMessage = fmt.Sprintf("*संदेश:* %s\n\n", offer.Message)
	}
	nextStep := "💡 सबसे अच्छा ऑफर चुनने के लिए \"status\" लिखें।"
	if offerCount == 1 {
		nextStep = "⏳ और ऑफर का इंतजार करें या \"पहला वाला ठीक है\" लिखकर स्वीकार करें।"
	}
	return fmt.Sprintf("🎉 *नया ऑफर मिला!* (ऑफर #%d)\n\n*खरीददार:* %s\n*भाव:* ₹%.0f/किलो\n*कुल राशि:* ₹%.0f\n*लेने का समय:* %s\n\n%sयह %s ग्रेड %s के लिए %s ऑफर है!\n\n%s",
		offerCount, offer.BuyerName, offer.PricePerKg, offer.TotalAmount, offer.PickupTime,
		buyerMessage, listing.QualityGrade, listing.CropType, quality, nextStep)
}

func formatProfile(name, address, pincode, phone string) string {
	return fmt.Sprintf("👤 *आपकी प्रोफाइल*\n\n📛 नाम: %s\n📍 पता: %s\n📮 पिनकोड: %s\n📞 फोन: %s\n\n💡 अपडेट करने के लिए *मेनू* लिखें", name, address, pincode, phone)
}

func formatNameUpdated(name string) string {
	return fmt.Sprintf("✅ नाम अपडेट हो गया!\n\n📛 नया नाम: %s", name)
}

func formatAddressUpdated(address string) string {
	return fmt.Sprintf("✅ पता अपडेट हो गया!\n\n📍 नया पता: %s", address)
}

func formatPincodeUpdated(pincode, displayName string) string {
	return fmt.Sprintf("✅ पिनकोड अपडेट हो गया!\n\n📮 नया पिनकोड: %s\n📍 स्थान: %s", pincode, displayName)
}

func formatListingStatus(listing *listings.Listing, offerCount int) string {
	tail := "⏳ ऑफर का इंतजार है..."
	if offerCount > 0 {
		tail = "✅ ऑफर आ गए हैं! \"ऑफर\" लिखें देखने के लिए।"
	}
	return fmt.Sprintf("📊 *आपकी लिस्टिंग की स्थिति:*\n\n🌾 फसल: %s\n⭐ ग्रेड: %s\n📦 मात्रा: %d किलो\n💰 ऑफर: %d\n\n%s",
		listing.CropType, listing.QualityGrade, listing.QuantityKg, offerCount, tail)
}
