package assist

import (
	"fmt"
	"strings"
)

// Languages the dashboard ships UI strings for. Anything else falls back to
// the raw code with LTR rendering.
var langNames = map[string]string{
	"fr": "Français",
	"ar": "العربية",
	"en": "English",
}

// LangName returns the display name for a language code.
func LangName(code string) string {
	if name, ok := langNames[code]; ok {
		return name
	}
	return code
}

var greetings = map[string]string{
	"fr": "Bonjour ! Je suis votre assistant de gestion. Posez-moi une question sur vos ventes, votre stock ou votre activité.",
	"ar": "مرحباً! أنا مساعدك في التسيير. اسألني عن مبيعاتك أو مخزونك أو نشاطك.",
	"en": "Hello! I'm your business assistant. Ask me anything about your sales, stock or activity.",
}

// Fixed user-facing messages for the fatal failure kinds. These are the only
// texts ever shown for an error; underlying causes stay in the logs.
var technicalDifficulty = map[string]string{
	"fr": "Je rencontre un problème technique. Merci de réessayer dans un instant.",
	"ar": "أواجه مشكلة تقنية. يرجى المحاولة مرة أخرى بعد قليل.",
	"en": "I'm having a technical problem. Please try again in a moment.",
}

var serviceUnavailable = map[string]string{
	"fr": "Le service est momentanément indisponible. Merci de réessayer plus tard.",
	"ar": "الخدمة غير متوفرة مؤقتاً. يرجى المحاولة لاحقاً.",
	"en": "The service is temporarily unavailable. Please try again later.",
}

func localized(table map[string]string, lang string) string {
	if msg, ok := table[lang]; ok {
		return msg
	}
	return table["fr"]
}

// degradedPersona is the system prompt for the constrained responder. It must
// keep the responder honest: no live business data, no invented numbers.
func degradedPersona(lang string, ctx CallerContext) string {
	var b strings.Builder
	b.WriteString("You are the assistant of a business-management dashboard, ")
	b.WriteString("currently running in degraded mode.\n")
	b.WriteString("You have NO access to the tenant's live business data: ")
	b.WriteString("no sales figures, no stock levels, no payroll, no accounting entries.\n")
	b.WriteString("When asked for numbers or anything specific to this business, ")
	b.WriteString("say honestly that the service is temporarily degraded and the ")
	b.WriteString("figures are not reachable right now. Never invent data.\n")
	b.WriteString("You may still answer general management questions, explain ")
	b.WriteString("dashboard features and give generic business advice.\n")
	fmt.Fprintf(&b, "Answer in the language of the user (default: %s).\n", LangName(lang))
	if ctx.Tier != "" {
		fmt.Fprintf(&b, "The tenant is on the %q plan.\n", ctx.Tier)
	}
	if ctx.Vertical != "" {
		fmt.Fprintf(&b, "The tenant's line of business is %q; calibrate examples and tone to it.\n", ctx.Vertical)
	}
	return b.String()
}
