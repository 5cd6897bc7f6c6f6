package geodb

// gazetteer maps normalized place names to space-separated ISO country
// codes. Country entries cover English and common endonym spellings;
// city entries are limited to major capitals and financial centers.
var gazetteer = map[string]string{
	// Countries.
	"afghanistan":          "af",
	"albania":              "al",
	"algeria":              "dz",
	"argentina":            "ar",
	"armenia":              "am",
	"australia":            "au",
	"austria":              "at",
	"osterreich":           "at",
	"azerbaijan":           "az",
	"bahamas":              "bs",
	"bahrain":              "bh",
	"bangladesh":           "bd",
	"belarus":              "by",
	"belgium":              "be",
	"belgique":             "be",
	"bolivia":              "bo",
	"bosnia and herzegovina": "ba",
	"brazil":               "br",
	"brasil":               "br",
	"bulgaria":             "bg",
	"cambodia":             "kh",
	"cameroon":             "cm",
	"canada":               "ca",
	"chile":                "cl",
	"china":                "cn",
	"colombia":             "co",
	"congo":                "cg",
	"costa rica":           "cr",
	"croatia":              "hr",
	"cuba":                 "cu",
	"cyprus":               "cy",
	"czech republic":       "cz",
	"czechia":              "cz",
	"denmark":              "dk",
	"danmark":              "dk",
	"dominican republic":   "do",
	"ecuador":              "ec",
	"egypt":                "eg",
	"el salvador":          "sv",
	"estonia":              "ee",
	"ethiopia":             "et",
	"finland":              "fi",
	"france":               "fr",
	"georgia":              "ge",
	"germany":              "de",
	"deutschland":          "de",
	"ghana":                "gh",
	"greece":               "gr",
	"guatemala":            "gt",
	"honduras":             "hn",
	"hong kong":            "hk",
	"hungary":              "hu",
	"iceland":              "is",
	"india":                "in",
	"indonesia":            "id",
	"iran":                 "ir",
	"iraq":                 "iq",
	"ireland":              "ie",
	"israel":               "il",
	"italy":                "it",
	"italia":               "it",
	"ivory coast":          "ci",
	"jamaica":              "jm",
	"japan":                "jp",
	"jordan":               "jo",
	"kazakhstan":           "kz",
	"kenya":                "ke",
	"kosovo":               "xk",
	"kuwait":               "kw",
	"kyrgyzstan":           "kg",
	"latvia":               "lv",
	"lebanon":              "lb",
	"libya":                "ly",
	"liechtenstein":        "li",
	"lithuania":            "lt",
	"luxembourg":           "lu",
	"malaysia":             "my",
	"maldives":             "mv",
	"malta":                "mt",
	"mexico":               "mx",
	"moldova":              "md",
	"monaco":               "mc",
	"mongolia":             "mn",
	"montenegro":           "me",
	"morocco":              "ma",
	"myanmar":              "mm",
	"nepal":                "np",
	"netherlands":          "nl",
	"nederland":            "nl",
	"new zealand":          "nz",
	"nicaragua":            "ni",
	"nigeria":              "ng",
	"north korea":          "kp",
	"north macedonia":      "mk",
	"norway":               "no",
	"norge":                "no",
	"oman":                 "om",
	"pakistan":             "pk",
	"panama":               "pa",
	"paraguay":             "py",
	"peru":                 "pe",
	"philippines":          "ph",
	"poland":               "pl",
	"polska":               "pl",
	"portugal":             "pt",
	"qatar":                "qa",
	"romania":              "ro",
	"russia":               "ru",
	"russian federation":   "ru",
	"rwanda":               "rw",
	"san marino":           "sm",
	"saudi arabia":         "sa",
	"senegal":              "sn",
	"serbia":               "rs",
	"seychelles":           "sc",
	"singapore":            "sg",
	"slovakia":             "sk",
	"slovenia":             "si",
	"somalia":              "so",
	"south africa":         "za",
	"south korea":          "kr",
	"spain":                "es",
	"espana":               "es",
	"sri lanka":            "lk",
	"sudan":                "sd",
	"sweden":               "se",
	"sverige":              "se",
	"switzerland":          "ch",
	"schweiz":              "ch",
	"syria":                "sy",
	"taiwan":               "tw",
	"tajikistan":           "tj",
	"tanzania":             "tz",
	"thailand":             "th",
	"tunisia":              "tn",
	"turkey":               "tr",
	"turkiye":              "tr",
	"turkmenistan":         "tm",
	"uganda":               "ug",
	"ukraine":              "ua",
	"united arab emirates": "ae",
	"united kingdom":       "gb",
	"great britain":        "gb",
	"england":              "gb",
	"scotland":             "gb",
	"wales":                "gb",
	"united states":        "us",
	"united states of america": "us",
	"usa":                  "us",
	"uruguay":              "uy",
	"uzbekistan":           "uz",
	"venezuela":            "ve",
	"vietnam":              "vn",
	"yemen":                "ye",
	"zambia":               "zm",
	"zimbabwe":             "zw",

	// Cities.
	"amsterdam":      "nl",
	"athens":         "gr",
	"bangkok":        "th",
	"barcelona":      "es",
	"beijing":        "cn",
	"berlin":         "de",
	"bern":           "ch",
	"bogota":         "co",
	"bratislava":     "sk",
	"brussels":       "be",
	"bucharest":      "ro",
	"budapest":       "hu",
	"buenos aires":   "ar",
	"cairo":          "eg",
	"chicago":        "us",
	"copenhagen":     "dk",
	"dubai":          "ae",
	"dublin":         "ie",
	"frankfurt":      "de",
	"geneva":         "ch",
	"hamburg":        "de",
	"helsinki":       "fi",
	"istanbul":       "tr",
	"jakarta":        "id",
	"johannesburg":   "za",
	"kyiv":           "ua",
	"kiev":           "ua",
	"lagos":          "ng",
	"lisbon":         "pt",
	"london":         "gb",
	"los angeles":    "us",
	"luanda":         "ao",
	"madrid":         "es",
	"manila":         "ph",
	"melbourne":      "au",
	"mexico city":    "mx",
	"miami":          "us",
	"milan":          "it",
	"minsk":          "by",
	"moscow":         "ru",
	"mumbai":         "in",
	"munich":         "de",
	"nairobi":        "ke",
	"new delhi":      "in",
	"new york":       "us",
	"new york city":  "us",
	"nicosia":        "cy",
	"oslo":           "no",
	"paris":          "fr",
	"prague":         "cz",
	"riga":           "lv",
	"rome":           "it",
	"san francisco":  "us",
	"sao paulo":      "br",
	"seoul":          "kr",
	"shanghai":       "cn",
	"sofia":          "bg",
	"stockholm":      "se",
	"sydney":         "au",
	"tallinn":        "ee",
	"tbilisi":        "ge",
	"tehran":         "ir",
	"tel aviv":       "il",
	"tokyo":          "jp",
	"toronto":        "ca",
	"vienna":         "at",
	"vilnius":        "lt",
	"warsaw":         "pl",
	"washington":     "us",
	"zurich":         "ch",
}
