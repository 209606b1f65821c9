// Package i18n holds the fixed fr/en/ar string tables of the public pages.
package i18n

import "clientvoice/internal/domain"

// Messages is the full set of user-facing strings for one locale.
type Messages struct {
	Prompt   string // page heading
	Subtitle string

	// Tooltips[n-1] is shown when hovering rating n.
	Tooltips [5]string

	FeedbackTitle      string
	CommentPlaceholder string
	ContactPlaceholder string
	BackToRating       string
	Submit             string
	CommentRequired    string
	SubmitFailed       string

	ThankTitle string
	ThankText  string
	ThankBack  string

	SecretRequired string
	SecretFailed   string
}

var tables = map[domain.Locale]Messages{
	domain.LocaleFR: {
		Prompt:             "Comment était votre expérience ?",
		Subtitle:           "Votre avis est précieux pour améliorer nos services.",
		Tooltips:           [5]string{"Très mauvais", "Mauvais", "Moyen", "Bon", "Excellent"},
		FeedbackTitle:      "Aidez-nous à nous améliorer 🙏",
		CommentPlaceholder: "Dites-nous ce qui n’a pas fonctionné...",
		ContactPlaceholder: "Votre nom ou contact (optionnel)",
		BackToRating:       "Retour à la notation",
		Submit:             "Envoyer mes commentaires",
		CommentRequired:    "Merci de laisser un commentaire pour nous aider à nous améliorer.",
		SubmitFailed:       "Erreur lors de l'envoi de votre avis.",
		ThankTitle:         "Merci pour vos commentaires 🙏",
		ThankText:          "Nous sommes vraiment désolés que votre expérience n'ait pas été parfaite, et nous allons travailler pour l'améliorer. Vos commentaires nous aident à progresser.",
		ThankBack:          "← Laisser un autre avis",
		SecretRequired:     "Veuillez saisir le code secret.",
		SecretFailed:       "Erreur serveur lors de la vérification.",
	},
	domain.LocaleEN: {
		Prompt:             "How was your experience?",
		Subtitle:           "Your feedback is valuable and helps us improve our services.",
		Tooltips:           [5]string{"Terrible", "Bad", "Average", "Good", "Excellent"},
		FeedbackTitle:      "Help us improve 🙏",
		CommentPlaceholder: "Tell us what didn’t work well...",
		ContactPlaceholder: "Your name or contact (optional)",
		BackToRating:       "Back to rating",
		Submit:             "Submit Feedback",
		CommentRequired:    "Please leave a comment to help us improve.",
		SubmitFailed:       "An error occurred while submitting your feedback.",
		ThankTitle:         "Thank you for your feedback 🙏",
		ThankText:          "We are truly sorry that your experience wasn’t perfect, and we will work hard to improve. Your feedback helps us get better.",
		ThankBack:          "← Leave another review",
		SecretRequired:     "Please enter the secret code.",
		SecretFailed:       "Server error during verification.",
	},
	domain.LocaleAR: {
		Prompt:             "كيف كانت تجربتك؟",
		Subtitle:           "رأيك مهم ويساعدنا على تحسين خدماتنا.",
		Tooltips:           [5]string{"سيئ جدًا", "سيئ", "متوسط", "جيد", "ممتاز"},
		FeedbackTitle:      "ساعدنا على تحسين خدماتنا 🙏",
		CommentPlaceholder: "أخبرنا بما لم يعجبك...",
		ContactPlaceholder: "اسمك أو وسيلة اتصال (اختياري)",
		BackToRating:       "رجوع إلى التقييم",
		Submit:             "إرسال تعليقي",
		CommentRequired:    "المرجو ترك تعليق لمساعدتنا على تحسين خدماتنا.",
		SubmitFailed:       "حدث خطأ أثناء إرسال تعليقك.",
		ThankTitle:         "🙏 شكراً على ملاحظاتك",
		ThankText:          "نحن آسفون حقًا لأن تجربتك لم تكن مثالية، وسنعمل جاهدين على تحسين خدماتنا. ملاحظاتك تساعدنا على التطور.",
		ThankBack:          "← اترك تقييماً آخر",
		SecretRequired:     "المرجو إدخال الرمز السري.",
		SecretFailed:       "خطأ في الخادم أثناء التحقق.",
	},
}

// For returns the table for l; unknown locales get the fr table.
func For(l domain.Locale) Messages {
	if m, ok := tables[l]; ok {
		return m
	}
	return tables[domain.DefaultLocale]
}

// Tooltip returns the hover text of rating n, or "" outside 1..5.
func (m Messages) Tooltip(n int) string {
	if n < domain.MinNote || n > domain.MaxNote {
		return ""
	}
	return m.Tooltips[n-1]
}
