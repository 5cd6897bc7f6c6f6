package names

// Token lexica backing the symbol taggers. Tokens are stored in normalized
// form (see Normalize). The person lexicon mixes given names and surnames:
// the person heuristic only needs to know that a token is name-like, not
// which role it plays.

var personNameTokens = tokenSet(
	// Given names.
	"aaron", "adam", "adrian", "ahmed", "aisha", "alan", "albert",
	"alexander", "alexandra", "ali", "alice", "amanda", "amelia", "amir",
	"ana", "anastasia", "andrea", "andreas", "andrew", "angela", "anna",
	"anne", "anthony", "anton", "antonio", "arthur", "ayesha", "barbara",
	"beatrice", "benjamin", "bernard", "brian", "bruno", "camille", "carla",
	"carlos", "carmen", "caroline", "catherine", "charles", "charlotte",
	"chen", "chloe", "christian", "christina", "christine", "christopher",
	"claire", "clara", "claudia", "daniel", "daniela", "david", "diana",
	"diego", "dmitri", "dominik", "dorothy", "eduardo", "edward", "elena",
	"elias", "elisabeth", "elizabeth", "emma", "emmanuel", "eric", "erik",
	"eva", "fatima", "felix", "fernando", "fiona", "francesca", "francesco",
	"francis", "frank", "franz", "frederik", "gabriel", "george", "giovanni",
	"giulia", "grace", "gregory", "guillaume", "hannah", "hans", "harold",
	"hassan", "heinrich", "helen", "helena", "henry", "hiroshi", "hugo",
	"ibrahim", "igor", "ingrid", "irene", "isabel", "isabella", "ivan",
	"jack", "jacob", "jacques", "james", "jan", "jane", "janet", "jason",
	"javier", "jean", "jennifer", "jessica", "joan", "joao", "johann",
	"johanna", "johannes", "john", "jonathan", "jorge", "jose", "josef",
	"joseph", "juan", "julia", "julian", "julie", "karen", "karl",
	"katharina", "katherine", "kevin", "klaus", "kurt", "laura", "laurent",
	"lena", "leon", "leonardo", "linda", "lisa", "louis", "louise", "lucas",
	"lucia", "ludwig", "luis", "luisa", "magdalena", "manuel", "marc",
	"marco", "marcus", "margaret", "maria", "marie", "mario", "mark",
	"marta", "martin", "martina", "mary", "matteo", "matthew", "matthias",
	"maximilian", "mehmet", "michael", "michelle", "miguel", "mohamed",
	"mohammed", "monica", "natalia", "nathalie", "nicholas", "nicolas",
	"nina", "noah", "olga", "oliver", "olivia", "omar", "oscar", "pablo",
	"paolo", "patricia", "patrick", "paul", "paula", "pedro", "peter",
	"philip", "philippe", "pierre", "rachel", "rafael", "raymond",
	"rebecca", "richard", "robert", "roberto", "roger", "rosa", "rudolf",
	"ruth", "ryan", "samuel", "sandra", "sara", "sarah", "sebastian",
	"sergei", "silvia", "simon", "sofia", "sophie", "stefan", "stephanie",
	"stephen", "susan", "susanne", "tatiana", "theodore", "thomas",
	"timothy", "tobias", "ulrich", "ursula", "valentina", "vera",
	"victor", "victoria", "vincent", "walter", "werner", "william",
	"wolfgang", "yuki", "yusuf", "zoe",
	// Surnames.
	"abbas", "adams", "ahmadi", "allen", "andersen", "anderson", "baker",
	"bauer", "becker", "bell", "berg", "bernard", "brown", "campbell",
	"carter", "chen", "clark", "collins", "costa", "cruz", "davies",
	"davis", "diaz", "doe", "dubois", "duran", "durand", "edwards",
	"evans", "fernandez", "ferrari", "fischer", "fontaine", "garcia",
	"gomez", "gonzalez", "green", "gruber", "hall", "hansen", "harris",
	"hernandez", "hill", "hoffmann", "hofer", "huber", "ivanov",
	"jackson", "jansen", "jensen", "johansson", "johnson", "jones",
	"keller", "khan", "kim", "king", "klein", "koch", "kovacs", "kumar",
	"kuznetsov", "lang", "larsen", "laurent", "lee", "lefebvre", "lehmann",
	"leroy", "lewis", "li", "lopez", "macron", "maier", "marino", "martin",
	"martinez", "mayer", "meier", "merkel", "meyer", "miller", "mitchell",
	"moore", "morales", "moreau", "moreno", "morgan", "muller", "murphy",
	"nagy", "nelson", "neumann", "nguyen", "nielsen", "novak", "olsen",
	"ortega", "parker", "patel", "perez", "petrov", "phillips", "popescu",
	"popov", "ramirez", "reyes", "richter", "rivera", "roberts",
	"robinson", "rodriguez", "romano", "rossi", "roux", "ruiz", "russo",
	"sanchez", "santos", "schmid", "schmidt", "schneider", "scholz",
	"schroder", "schulz", "schwarz", "scott", "silva", "simon", "singh",
	"smirnov", "smith", "sokolov", "stewart", "suzuki", "tanaka",
	"taylor", "thompson", "torres", "turner", "vargas", "vogel", "wagner",
	"walker", "wang", "ward", "watson", "weber", "white", "williams",
	"wilson", "wolf", "wood", "wright", "yilmaz", "young", "zhang",
	"zimmermann",
)

var orgClassTokens = tokenSet(
	"ab", "ag", "anstalt", "aps", "as", "asa", "bv", "co",
	"company", "cooperative", "corp", "corporation", "cv", "ei", "eurl",
	"ev", "foundation", "gbr", "gmbh", "group", "holding", "holdings",
	"inc", "incorporated", "kft", "kg", "kgaa", "limited", "llc", "llp",
	"lp", "ltd", "ltda", "nv", "ohg", "oy", "oyj", "plc", "pte", "pty",
	"sa", "sarl", "sas", "se", "sl", "spa", "srl", "trust", "ug", "zrt",
)

func tokenSet(tokens ...string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
