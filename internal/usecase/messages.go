package usecase

// messageSet holds every user-visible string for one language. Internal
// errors are never shown verbatim; failures always surface as one of these
// short messages.
type messageSet struct {
	Welcome        string
	Help           string
	Scanning       string
	NotFound       string
	GenericError   string
	ChooseLanguage string
	LanguageSet    string
	FoundProduct   string
	BuyLocal       string
	BuyGlobal      string
	BuyOther       string
}

var messagesByLang = map[string]messageSet{
	"en": {
		Welcome:        "Hello! Send a product photo or type a product name and I'll return purchase links.",
		Help:           "Send a photo or type a product name and I'll build marketplace links for you. Use /lang to switch language.",
		Scanning:       "🔍 Checking the photo, one moment please...",
		NotFound:       "Sorry, I couldn't identify the product. Send the product name as text and I'll create the links.",
		GenericError:   "An error occurred while processing the image. Make sure the photo is clear and try again.",
		ChooseLanguage: "Choose your language:",
		LanguageSet:    "English 🇺🇸 selected. Now send a product photo or the product name.",
		FoundProduct:   "🛒 Likely product:",
		BuyLocal:       "Buy Now 🛒",
		BuyGlobal:      "Buy on amazon.com 🌍",
		BuyOther:       "More stores 🛍",
	},
	"ar": {
		Welcome:        "مرحباً! أرسل صورة منتج أو اكتب اسمه وسأعيد لك روابط الشراء.",
		Help:           "أرسل صورة أو اكتب اسم المنتج وسيتم إنشاء الروابط تلقائياً. استخدم /lang لتغيير اللغة.",
		Scanning:       "🔍 أفحص الصورة... انتظر لحظة من فضلك",
		NotFound:       "عذراً لم أستطع التعرف على المنتج. أرسل اسم المنتج نصياً لأقوم بإنشاء الروابط.",
		GenericError:   "حدث خطأ أثناء معالجة الصورة. تأكد من وضوح الصورة وحاول مرة أخرى.",
		ChooseLanguage: "اختر لغتك:",
		LanguageSet:    "تم اختيار العربية 🇸🇦. الآن أرسل صورة أو اسم المنتج.",
		FoundProduct:   "🛒 المنتج المحتمل:",
		BuyLocal:       "اشتري الآن 🛒",
		BuyGlobal:      "اشتري من amazon.com 🌍",
		BuyOther:       "متاجر أخرى 🛍",
	},
	"fr": {
		Welcome:        "Bonjour ! Envoyez une photo de produit ou tapez son nom, je vous renvoie des liens d'achat.",
		Help:           "Envoyez une photo ou tapez le nom d'un produit pour obtenir les liens. Utilisez /lang pour changer de langue.",
		Scanning:       "🔍 J'analyse la photo, un instant s'il vous plaît...",
		NotFound:       "Désolé, je n'ai pas pu identifier le produit. Envoyez son nom en texte et je créerai les liens.",
		GenericError:   "Une erreur s'est produite lors du traitement de l'image. Vérifiez que la photo est nette et réessayez.",
		ChooseLanguage: "Choisissez votre langue :",
		LanguageSet:    "Français 🇫🇷 sélectionné. Envoyez maintenant une photo ou le nom du produit.",
		FoundProduct:   "🛒 Produit probable :",
		BuyLocal:       "Acheter 🛒",
		BuyGlobal:      "Acheter sur amazon.com 🌍",
		BuyOther:       "Autres boutiques 🛍",
	},
}

// supportedLanguages is the closed set of language codes; anything else is
// normalized to English.
var supportedLanguages = map[string]bool{"en": true, "ar": true, "fr": true}

func normalizeLang(lang string) string {
	if supportedLanguages[lang] {
		return lang
	}
	return "en"
}

func messagesFor(lang string) messageSet {
	return messagesByLang[normalizeLang(lang)]
}
