package i18n

// Message keys used by the pipeline. UI label keys live in ui.go.
const (
	KeyAudioUploaded        = "audio_uploaded"
	KeyDocumentUploaded     = "document_uploaded"
	KeyImageUnsupported     = "image_unsupported"
	KeyFileUnsupported      = "file_unsupported"
	KeyErrorPDFImport       = "error_pdf_import"
	KeyErrorDocxImport      = "error_docx_import"
	KeyErrorReading         = "error_reading"
	KeyExtensionUnsupported = "extension_unsupported"
	KeyAdvisorOffline       = "advisor_offline"
	KeyTTSGenerating        = "tts_generating"
	KeyRecommendationError  = "recommendation_error"
	KeyGeneratingText       = "generating_text"
)

var englishStrings = map[string]string{
	"chat_tab":                   "💬 Chat",
	"policy_tab":                 "🔍 Policy Finder",
	"insurance_title":            "🏦 Insurance Advisor Chatbot",
	"insurance_subtitle":         "Discuss your insurance needs and get personalized policy recommendations!",
	"policy_title":               "🔍 Policy Finder",
	"policy_subtitle":            "Enter your requirements to receive tailored insurance policy recommendations.",
	"placeholder_text":           "Enter your question or upload voice or file to consult your insurance advisor...",
	"tts_label":                  "Enable Text-to-Speech",
	"examples_label":             "Examples",
	"policy_details_label":       "📝 Policy Details (Describe your needs)",
	"policy_details_placeholder": "E.g., I need comprehensive car insurance with roadside assistance",
	"insurance_type_label":       "Insurance Type",
	"coverage_label":             "Coverage Amount (optional)",
	"coverage_placeholder":       "E.g., $50,000",
	"currency_label":             "Select Currency",
	"budget_label":               "Premium Budget (%s) (optional)",
	"people_label":               "Number of Insured Individuals (optional)",
	"term_label":                 "Policy Term (optional)",
	"term_placeholder":           "E.g., 1 year, 5 years",
	"generate_btn":               "Generate Recommendation",
	"recommendation_label":       "Recommendation",
	KeyGeneratingText:            "**Generating policy recommendation...**",

	KeyFileUnsupported:      "I've uploaded a file with unsupported format: '%s'. The insurance advisor can process text, document, and audio files. Please upload a supported file format or type your question.",
	KeyImageUnsupported:     "I've uploaded an image file named '%s'. Unfortunately, image analysis is not yet supported. Please describe what the image contains so I can assist you better.",
	KeyDocumentUploaded:     "I've uploaded a document named '%s'. Please analyze this file for insurance-relevant information:",
	KeyAudioUploaded:        "I've uploaded an audio file named '%s' with the following content:",
	KeyErrorPDFImport:       "Error: PDF reader is not available. Unable to read PDF file %s.",
	KeyErrorDocxImport:      "Error: Word document reader is not available. Unable to read %s file %s.",
	KeyErrorReading:         "Error reading %s file %s: %s",
	KeyExtensionUnsupported: "Unsupported file format: %s. The insurance advisor can process .txt, .pdf, .doc and .docx files.",
	KeyAdvisorOffline:       "Advisor is currently offline, please wait a moment. Error: %s...",
	KeyTTSGenerating:        "🔊 Generating text-to-speech...",
	KeyRecommendationError:  "**Error generating recommendation: %s... Please try again.**",
}

var frenchStrings = map[string]string{
	"chat_tab":                   "💬 Discussion",
	"policy_tab":                 "🔍 Recherche de Police",
	"insurance_title":            "🏦 Chatbot Conseiller en Assurance",
	"insurance_subtitle":         "Discutez de vos besoins en assurance et obtenez des recommandations personnalisées!",
	"policy_title":               "🔍 Recherche de Police",
	"policy_subtitle":            "Entrez vos exigences pour recevoir des recommandations de polices d'assurance sur mesure.",
	"placeholder_text":           "Saisissez votre question ou téléchargez un fichier vocal ou un document pour consulter votre conseiller en assurance...",
	"tts_label":                  "Activer la Synthèse Vocale",
	"examples_label":             "Exemples",
	"policy_details_label":       "📝 Détails de la Police (Décrivez vos besoins)",
	"policy_details_placeholder": "Ex: J'ai besoin d'une assurance auto complète avec assistance routière",
	"insurance_type_label":       "Type d'Assurance",
	"coverage_label":             "Montant de Couverture (optionnel)",
	"coverage_placeholder":       "Ex: 50 000 €",
	"currency_label":             "Sélectionnez la Devise",
	"budget_label":               "Budget de Prime (%s) (optionnel)",
	"people_label":               "Nombre de Personnes Assurées (optionnel)",
	"term_label":                 "Durée de la Police (optionnel)",
	"term_placeholder":           "Ex: 1 an, 5 ans",
	"generate_btn":               "Générer une Recommandation",
	"recommendation_label":       "Recommandation",
	KeyGeneratingText:            "**Génération de recommandation en cours...**",

	KeyFileUnsupported:      "J'ai téléchargé un fichier avec un format non pris en charge: '%s'. Le conseiller en assurance peut traiter des fichiers texte, document et audio. Veuillez télécharger un format de fichier pris en charge ou tapez votre question.",
	KeyImageUnsupported:     "J'ai téléchargé un fichier image nommé '%s'. Malheureusement, l'analyse d'image n'est pas encore prise en charge. Veuillez décrire ce que contient l'image pour que je puisse mieux vous aider.",
	KeyDocumentUploaded:     "J'ai téléchargé un document nommé '%s'. Veuillez analyser ce fichier pour des informations pertinentes sur l'assurance:",
	KeyAudioUploaded:        "J'ai téléchargé un fichier audio nommé '%s' avec le contenu suivant:",
	KeyErrorPDFImport:       "Erreur: Le lecteur PDF n'est pas disponible. Impossible de lire le fichier PDF %s.",
	KeyErrorDocxImport:      "Erreur: Le lecteur de documents Word n'est pas disponible. Impossible de lire le fichier %s %s.",
	KeyErrorReading:         "Erreur de lecture du fichier %s %s: %s",
	KeyExtensionUnsupported: "Format de fichier non pris en charge: %s. Le conseiller en assurance peut traiter les fichiers .txt, .pdf, .doc et .docx.",
	KeyAdvisorOffline:       "Le conseiller est actuellement hors ligne, veuillez patienter un moment. Error: %s...",
	KeyTTSGenerating:        "🔊 Génération de la synthèse vocale...",
	KeyRecommendationError:  "**Erreur lors de la génération de la recommandation: %s... Veuillez réessayer.**",
}

var examplePrompts = map[Language][]string{
	English: {
		"I need help finding a comprehensive car insurance policy.",
		"What are the benefits of term life insurance?",
		"Can you recommend a home insurance policy for a new homeowner?",
		"What should I consider for a health insurance plan?",
	},
	French: {
		"J'ai besoin d'aide pour trouver une police d'assurance automobile complète.",
		"Quels sont les avantages de l'assurance vie temporaire?",
		"Pouvez-vous recommander une police d'assurance habitation pour un nouveau propriétaire?",
		"Que dois-je considérer pour un régime d'assurance maladie?",
	},
}

var insuranceTypes = map[Language][]string{
	English: {"Auto", "Home", "Life", "Health", "Travel"},
	French:  {"Auto", "Habitation", "Vie", "Santé", "Voyage"},
}
