package merchant

// Priorities of the built-in rule groups
const (
	priorityExact   = 110
	priorityKnown   = 100
	priorityKeyword = 50
	priorityGeneric = 10
)

var defaultRules = []Rule{
	// merchants whose names contain another merchant's name
	{Merchant: "Uber Eats", Pattern: `\buber\s*\*?\s*eats\b`, Code: "DINE", Confidence: 0.97, Priority: priorityExact},
	{Merchant: "Amazon Prime", Pattern: `\bamazon\s*prime\b`, Code: "ENT", Confidence: 0.95, Priority: priorityExact},
	{Merchant: "H&R Block", Pattern: `\bh\s*&\s*r\s*block\b`, Code: "D10", Confidence: 0.98, Priority: priorityExact},

	// groceries
	{Merchant: "Woolworths", Pattern: `\bwoolworths\b|\bwoolies\b`, Code: "GROC", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Coles", Pattern: `\bcoles\b`, Code: "GROC", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Aldi", Pattern: `\baldi\b`, Code: "GROC", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "IGA", Pattern: `\biga\b`, Code: "GROC", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Harris Farm", Pattern: `\bharris\s*farm\b`, Code: "GROC", Confidence: 0.95, Priority: priorityKnown},

	// dining
	{Merchant: "McDonald's", Pattern: `\bmc\s*donald'?s\b|\bmaccas\b`, Code: "DINE", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Starbucks", Pattern: `\bstarbucks\b`, Code: "DINE", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "The Coffee Club", Pattern: `\bcoffee\s*club\b`, Code: "DINE", Confidence: 0.92, Priority: priorityKnown},
	{Merchant: "Guzman y Gomez", Pattern: `\bguzman\b`, Code: "DINE", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Menulog", Pattern: `\bmenulog\b`, Code: "DINE", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "DoorDash", Pattern: `\bdoor\s*dash\b`, Code: "DINE", Confidence: 0.95, Priority: priorityKnown},

	// fuel and motoring
	{Merchant: "Ampol", Pattern: `\bampol\b|\bcaltex\b`, Code: "FUEL", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "BP", Pattern: `\bbp\b`, Code: "FUEL", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Shell", Pattern: `\bshell\b|\bcoles\s*express\b`, Code: "FUEL", Confidence: 0.9, Priority: priorityExact},
	{Merchant: "7-Eleven", Pattern: `\b7\s*-?\s*eleven\b`, Code: "FUEL", Confidence: 0.85, Priority: priorityKnown},
	{Merchant: "Linkt", Pattern: `\blinkt\b|\be-?toll\b|\beastlink\b`, Code: "D1", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Wilson Parking", Pattern: `\bwilson\s*parking\b`, Code: "D1", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Secure Parking", Pattern: `\bsecure\s*parking\b`, Code: "D1", Confidence: 0.9, Priority: priorityKnown},

	// travel
	{Merchant: "Qantas", Pattern: `\bqantas\b`, Code: "D2", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Virgin Australia", Pattern: `\bvirgin\s*(?:australia|aus)\b`, Code: "D2", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Jetstar", Pattern: `\bjetstar\b`, Code: "D2", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Uber", Pattern: `\buber\b`, Code: "D2", Confidence: 0.75, Priority: priorityKnown},
	{Merchant: "Transport for NSW", Pattern: `\btransport\s*for\s*nsw\b|\btransportfornsw|\bopal\b`, Code: "TPT", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Myki", Pattern: `\bmyki\b|\bptv\b`, Code: "TPT", Confidence: 0.95, Priority: priorityKnown},

	// work clothing and equipment
	{Merchant: "Officeworks", Pattern: `\bofficeworks\b`, Code: "D5", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "RSEA Safety", Pattern: `\brsea\b`, Code: "D3", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Workwear Group", Pattern: `\bworkwear\b|\bhard\s*yakka\b`, Code: "D3", Confidence: 0.85, Priority: priorityKnown},

	// self-education
	{Merchant: "Udemy", Pattern: `\budemy\b`, Code: "D4", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Coursera", Pattern: `\bcoursera\b`, Code: "D4", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "LinkedIn Learning", Pattern: `\blinkedin\s*learning\b`, Code: "D4", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "TAFE", Pattern: `\btafe\b`, Code: "D4", Confidence: 0.9, Priority: priorityKnown},

	// donations
	{Merchant: "Australian Red Cross", Pattern: `\bred\s*cross\b`, Code: "D9", Confidence: 0.97, Priority: priorityKnown},
	{Merchant: "UNICEF", Pattern: `\bunicef\b`, Code: "D9", Confidence: 0.97, Priority: priorityKnown},
	{Merchant: "The Salvation Army", Pattern: `\bsalvation\s*army\b|\bsalvos\b`, Code: "D9", Confidence: 0.97, Priority: priorityKnown},
	{Merchant: "World Vision", Pattern: `\bworld\s*vision\b`, Code: "D9", Confidence: 0.97, Priority: priorityKnown},
	{Merchant: "Oxfam", Pattern: `\boxfam\b`, Code: "D9", Confidence: 0.95, Priority: priorityKnown},

	// tax affairs and insurance
	{Merchant: "Etax", Pattern: `\betax\b`, Code: "D10", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "TAL Life", Pattern: `\btal\s*life\b`, Code: "INS-IP", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "MLC Life", Pattern: `\bmlc\s*life\b`, Code: "INS-IP", Confidence: 0.85, Priority: priorityKnown},

	// shopping
	{Merchant: "Bunnings", Pattern: `\bbunnings\b`, Code: "SHOP", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "JB Hi-Fi", Pattern: `\bjb\s*hi\s*-?\s*fi\b`, Code: "SHOP", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Amazon", Pattern: `\bamazon\b|\bamzn\b`, Code: "SHOP", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Kmart", Pattern: `\bkmart\b`, Code: "SHOP", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Target", Pattern: `\btarget\b`, Code: "SHOP", Confidence: 0.9, Priority: priorityKnown},

	// utilities and subscriptions
	{Merchant: "Telstra", Pattern: `\btelstra\b`, Code: "UTIL", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Optus", Pattern: `\boptus\b`, Code: "UTIL", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "AGL", Pattern: `\bagl\b`, Code: "UTIL", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Origin Energy", Pattern: `\borigin\s*energy\b`, Code: "UTIL", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Netflix", Pattern: `\bnetflix\b`, Code: "ENT", Confidence: 0.97, Priority: priorityKnown},
	{Merchant: "Spotify", Pattern: `\bspotify\b`, Code: "ENT", Confidence: 0.97, Priority: priorityKnown},

	// health
	{Merchant: "Chemist Warehouse", Pattern: `\bchemist\s*warehouse\b`, Code: "HLTH", Confidence: 0.95, Priority: priorityKnown},
	{Merchant: "Priceline Pharmacy", Pattern: `\bpriceline\b`, Code: "HLTH", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Medibank", Pattern: `\bmedibank\b`, Code: "HLTH", Confidence: 0.9, Priority: priorityKnown},
	{Merchant: "Bupa", Pattern: `\bbupa\b`, Code: "HLTH", Confidence: 0.9, Priority: priorityKnown},

	// keyword rules, merchant name read from the description
	{Pattern: `\bincome\s*protection\b`, Code: "INS-IP", Confidence: 0.7, Priority: priorityKeyword},
	{Pattern: `\bdonation\b|\bcharity\b`, Code: "D9", Confidence: 0.65, Priority: priorityKeyword},
	{Pattern: `\btax\s*(?:agent|return|accountant)\b`, Code: "D10", Confidence: 0.65, Priority: priorityKeyword},
	{Pattern: `\bsalary\b|\bpayroll\b|\bwages\b`, Code: "INC", Confidence: 0.7, Priority: priorityKeyword},
	{Pattern: `\binterest\s*(?:charged|fee)\b|\bfee\b|\bcharge\b`, Code: "FEE", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\btransfer\b|\bpayment\s*(?:thank\s*you|thankyou|received)\b|\bbpay\b`, Code: "XFER", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\bparking\b|\btoll\b`, Code: "D1", Confidence: 0.55, Priority: priorityKeyword},
	{Pattern: `\bdry\s*clean|\buniform\b|\blaundry\b`, Code: "D3", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\bcourse\b|\btraining\b|\bseminar\b|\bconference\b|\buniversity\b`, Code: "D4", Confidence: 0.55, Priority: priorityKeyword},
	{Pattern: `\bcafe\b|\bcoffee\b|\brestaurant\b|\bpizza\b|\bsushi\b|\bbakery\b|\btakeaway\b|\bpub\b`, Code: "DINE", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\bsupermarket\b|\bgrocer|\bbutcher\b|\bfruit\b`, Code: "GROC", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\bpetrol\b|\bfuel\b|\bservo\b`, Code: "FUEL", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\bpharmacy\b|\bchemist\b|\bmedical\b|\bdental\b|\bphysio\b`, Code: "HLTH", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\btaxi\b|\bcabs?\b|\bairline\b`, Code: "D2", Confidence: 0.55, Priority: priorityKeyword},
	{Pattern: `\bcinema\b|\bcinemas\b|\bticketek\b|\bticketmaster\b`, Code: "ENT", Confidence: 0.6, Priority: priorityKeyword},
	{Pattern: `\bbooks?\b|\bstationery\b`, Code: "D5", Confidence: 0.5, Priority: priorityGeneric},
	{Pattern: `\bstore\b|\bshop\b|\bmart\b`, Code: "SHOP", Confidence: 0.4, Priority: priorityGeneric},
}

// DefaultRules returns a copy of the built-in knowledge base
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}
