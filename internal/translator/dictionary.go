package translator

// phraseTable maps a source phrase to its translation for one direction.
// Keys are either exact original-case phrases or their lower-case,
// punctuation-free form.
type phraseTable map[string]string

var enToFr = phraseTable{
	"Hello, how are you?":       "Bonjour, comment allez-vous?",
	"hello, how are you?":       "Bonjour, comment allez-vous?",
	"hello how are you":         "Bonjour, comment allez-vous?",
	"hello":                     "bonjour",
	"how are you":               "comment allez-vous",
	"good morning":              "bonjour",
	"good evening":              "bonsoir",
	"thank you":                 "merci",
	"goodbye":                   "au revoir",
	"please":                    "s'il vous plaît",
	"yes":                       "oui",
	"no":                        "non",
	"excuse me":                 "excusez-moi",
	"i love you":                "je t'aime",
	"how are you doing today":   "comment allez-vous aujourd'hui",
	"i love learning languages": "j'adore apprendre des langues",
	"can we meet tomorrow":      "pouvons-nous nous rencontrer demain",
	"thank you for your help":   "merci pour votre aide",
	"what is your name":         "comment vous appelez-vous",
	"my name is":                "je m'appelle",
	"nice to meet you":          "enchanté de faire votre connaissance",
	"how's the weather":         "quel temps fait-il",
	"i'm sorry":                 "je suis désolé",
	"where are you from":        "d'où venez-vous",
	"i'm from":                  "je viens de",
	"i don't understand":        "je ne comprends pas",
	"could you repeat that":     "pourriez-vous répéter cela",
	"i need help":               "j'ai besoin d'aide",
	"what time is it":           "quelle heure est-il",
	"where is the bathroom":     "où sont les toilettes",
	"how much does it cost":     "combien ça coûte",
	"i speak a little french":   "je parle un peu français",
	"do you speak english":      "parlez-vous anglais",
}

var frToEn = phraseTable{
	"Bonjour, comment allez-vous?":         "Hello, how are you?",
	"bonjour, comment allez-vous?":         "Hello, how are you?",
	"bonjour comment allez-vous":           "Hello, how are you?",
	"bonjour":                              "hello",
	"comment allez-vous":                   "how are you",
	"bonsoir":                              "good evening",
	"merci":                                "thank you",
	"au revoir":                            "goodbye",
	"s'il vous plaît":                      "please",
	"oui":                                  "yes",
	"non":                                  "no",
	"excusez-moi":                          "excuse me",
	"je t'aime":                            "i love you",
	"comment allez-vous aujourd'hui":       "how are you doing today",
	"j'adore apprendre des langues":        "i love learning languages",
	"pouvons-nous nous rencontrer demain":  "can we meet tomorrow",
	"merci pour votre aide":                "thank you for your help",
	"comment vous appelez-vous":            "what is your name",
	"je m'appelle":                         "my name is",
	"enchanté de faire votre connaissance": "nice to meet you",
	"quel temps fait-il":                   "how's the weather",
	"je suis désolé":                       "i'm sorry",
	"d'où venez-vous":                      "where are you from",
	"je viens de":                          "i'm from",
	"je ne comprends pas":                  "i don't understand",
	"pourriez-vous répéter cela":           "could you repeat that",
	"j'ai besoin d'aide":                   "i need help",
	"quelle heure est-il":                  "what time is it",
	"où sont les toilettes":                "where is the bathroom",
	"combien ça coûte":                     "how much does it cost",
	"je parle un peu français":             "i speak a little french",
	"parlez-vous anglais":                  "do you speak english",
}
