package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// WelcomeMessage opens every new session.
const WelcomeMessage = "Hi! I can help you find products, stores and categories near you. What are you looking for?"

// VerificationPrompt is returned when an unverified user asks for
// anything beyond product or company questions.
const VerificationPrompt = "Please verify your phone number first so I can help you with that. Tap Verify and enter the OTP we send you."

// CompanyPromptV1 frames direct answers about the service itself.
// The user's message is appended below it.
const CompanyPromptV1 = `You are the assistant of a hyperlocal shopping service that connects
shoppers with nearby local stores. Shoppers chat with you to discover
products, categories and sellers in their area; sellers list their
store and catalog with us; orders are fulfilled locally.

Answer the user's question about the service in 2-3 friendly sentences.
Do not invent prices, seller names or delivery promises.

User question: `

// CompanyFallbackReply is used when the direct LLM answer fails.
const CompanyFallbackReply = "We connect you with local stores around you - you can discover products, browse categories and chat with sellers. Ask me about any product to get started!"

// Fixed replies for intents that bypass the matching core.
const (
	SellerIntentReply = "Great that you want to sell with us! Register your store from the Seller section of the app and our team will get your catalog online within a day."

	InvestorsIntentReply = "Thanks for your interest in partnering with us. Please write to our team at invest@bazaarchat.in and we will get back to you."

	AgentIntentReply = "To join as a delivery or sales agent, open the Agents section in the app and submit your details. Our local team will contact you."

	VoiceAIIntentReply = "Our voice assistant lets you shop hands-free in Hindi or English. Tap the mic icon in the app and just say what you need."
)

// PlaceholderImagePath is served for records without an image of
// their own.
const PlaceholderImagePath = "/assets/placeholder.png"
