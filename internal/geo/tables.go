package geo

// cityCodes maps lowercase city names (optionally suffixed with a region
// or country) to the primary airport code for that city. Covers the major
// cities hints are expected to mention; anything else goes through the
// remote resolver.
var cityCodes = map[string]string{
	"toronto": "YYZ", "toronto canada": "YYZ", "toronto ontario": "YYZ",
	"new york": "JFK", "new york usa": "JFK", "new york ny": "JFK", "new york city": "JFK",
	"miami": "MIA", "miami fl": "MIA", "miami florida": "MIA",
	"athens": "ATH", "athens greece": "ATH",
	"london": "LHR", "london uk": "LHR", "london england": "LHR",
	"paris": "CDG", "paris france": "CDG",
	"madrid": "MAD", "madrid spain": "MAD",
	"rome": "FCO", "rome italy": "FCO",
	"berlin": "BER", "berlin germany": "BER",
	"tokyo": "NRT", "tokyo japan": "NRT",
	"beijing": "PEK", "beijing china": "PEK",
	"sydney": "SYD", "sydney australia": "SYD",
	"mumbai": "BOM", "mumbai india": "BOM",
	"los angeles": "LAX", "los angeles ca": "LAX", "los angeles california": "LAX",
	"chicago": "ORD", "chicago il": "ORD", "chicago illinois": "ORD",
	"san francisco": "SFO", "san francisco ca": "SFO", "san francisco california": "SFO",
	"amsterdam": "AMS", "amsterdam netherlands": "AMS",
	"barcelona": "BCN", "barcelona spain": "BCN",
	"milan": "MXP", "milan italy": "MXP",
	"munich": "MUC", "munich germany": "MUC",
	"vienna": "VIE", "vienna austria": "VIE",
	"prague": "PRG", "prague czech republic": "PRG",
	"budapest": "BUD", "budapest hungary": "BUD",
	"warsaw": "WAW", "warsaw poland": "WAW",
	"stockholm": "ARN", "stockholm sweden": "ARN",
	"oslo": "OSL", "oslo norway": "OSL",
	"copenhagen": "CPH", "copenhagen denmark": "CPH",
	"helsinki": "HEL", "helsinki finland": "HEL",
	"dublin": "DUB", "dublin ireland": "DUB",
	"edinburgh": "EDI", "edinburgh scotland": "EDI",
	"glasgow": "GLA", "glasgow scotland": "GLA",
	"manchester": "MAN", "manchester uk": "MAN",
	"birmingham": "BHX", "birmingham uk": "BHX",
	"bristol": "BRS", "bristol uk": "BRS",
	"newcastle": "NCL", "newcastle uk": "NCL",
	"belfast": "BFS", "belfast northern ireland": "BFS",
	"cork": "ORK", "cork ireland": "ORK",
}
