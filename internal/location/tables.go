package location

// Static cost-of-living and tax tables for major cities. Index baseline is
// New York = 100. Brackets are annual, in the location's currency, employee
// side only.

var usBrackets = []TaxBracket{
	{UpTo: 11600, Rate: 0.10},
	{UpTo: 47150, Rate: 0.12},
	{UpTo: 100525, Rate: 0.22},
	{UpTo: 191950, Rate: 0.24},
	{UpTo: 243725, Rate: 0.32},
	{UpTo: 609350, Rate: 0.35},
	{Rate: 0.37},
}

var usSocial = []SocialCharge{
	{Name: "Social Security", Rate: 0.062},
	{Name: "Medicare", Rate: 0.0145},
}

var frBrackets = []TaxBracket{
	{UpTo: 11294, Rate: 0},
	{UpTo: 28797, Rate: 0.11},
	{UpTo: 82341, Rate: 0.30},
	{UpTo: 177106, Rate: 0.41},
	{Rate: 0.45},
}

var frSocial = []SocialCharge{
	{Name: "Social security contributions", Rate: 0.135},
	{Name: "CSG/CRDS", Rate: 0.097},
}

var ukBrackets = []TaxBracket{
	{UpTo: 12570, Rate: 0},
	{UpTo: 50270, Rate: 0.20},
	{UpTo: 125140, Rate: 0.40},
	{Rate: 0.45},
}

var ukSocial = []SocialCharge{
	{Name: "National Insurance", Rate: 0.08},
}

var deBrackets = []TaxBracket{
	{UpTo: 11604, Rate: 0},
	{UpTo: 66760, Rate: 0.24},
	{UpTo: 277825, Rate: 0.42},
	{Rate: 0.45},
}

var deSocial = []SocialCharge{
	{Name: "Pension insurance", Rate: 0.093},
	{Name: "Health insurance", Rate: 0.081},
	{Name: "Unemployment insurance", Rate: 0.013},
}

var inBrackets = []TaxBracket{
	{UpTo: 300000, Rate: 0},
	{UpTo: 700000, Rate: 0.05},
	{UpTo: 1000000, Rate: 0.10},
	{UpTo: 1200000, Rate: 0.15},
	{UpTo: 1500000, Rate: 0.20},
	{Rate: 0.30},
}

var inSocial = []SocialCharge{
	{Name: "Provident fund", Rate: 0.12},
}

var jpBrackets = []TaxBracket{
	{UpTo: 1950000, Rate: 0.05},
	{UpTo: 3300000, Rate: 0.10},
	{UpTo: 6950000, Rate: 0.20},
	{UpTo: 9000000, Rate: 0.23},
	{UpTo: 18000000, Rate: 0.33},
	{Rate: 0.40},
}

var jpSocial = []SocialCharge{
	{Name: "Social insurance", Rate: 0.143},
}

var caBrackets = []TaxBracket{
	{UpTo: 55867, Rate: 0.15},
	{UpTo: 111733, Rate: 0.205},
	{UpTo: 173205, Rate: 0.26},
	{UpTo: 246752, Rate: 0.29},
	{Rate: 0.33},
}

var caSocial = []SocialCharge{
	{Name: "CPP", Rate: 0.0595},
	{Name: "EI", Rate: 0.0166},
}

var countries = map[string]Profile{
	"united states": {Country: "United States", Currency: "USD", CostOfLivingIndex: 75, RentIndex: 45, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"usa":           {Country: "United States", Currency: "USD", CostOfLivingIndex: 75, RentIndex: 45, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"us":            {Country: "United States", Currency: "USD", CostOfLivingIndex: 75, RentIndex: 45, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"france":        {Country: "France", Currency: "EUR", CostOfLivingIndex: 68, RentIndex: 30, TaxBrackets: frBrackets, SocialCharges: frSocial},
	"united kingdom": {Country: "United Kingdom", Currency: "GBP", CostOfLivingIndex: 70, RentIndex: 38, TaxBrackets: ukBrackets, SocialCharges: ukSocial},
	"uk":            {Country: "United Kingdom", Currency: "GBP", CostOfLivingIndex: 70, RentIndex: 38, TaxBrackets: ukBrackets, SocialCharges: ukSocial},
	"germany":       {Country: "Germany", Currency: "EUR", CostOfLivingIndex: 65, RentIndex: 32, TaxBrackets: deBrackets, SocialCharges: deSocial},
	"india":         {Country: "India", Currency: "INR", CostOfLivingIndex: 25, RentIndex: 8, TaxBrackets: inBrackets, SocialCharges: inSocial},
	"japan":         {Country: "Japan", Currency: "JPY", CostOfLivingIndex: 62, RentIndex: 28, TaxBrackets: jpBrackets, SocialCharges: jpSocial},
	"canada":        {Country: "Canada", Currency: "CAD", CostOfLivingIndex: 68, RentIndex: 36, TaxBrackets: caBrackets, SocialCharges: caSocial},
}

// ByCurrency finds the country profile whose currency matches, or nil. Used
// when a salary is quoted in a currency foreign to the resolved location.
func ByCurrency(code string) *Profile {
	for _, name := range []string{"united states", "france", "united kingdom", "india", "japan", "canada"} {
		if p, ok := countries[name]; ok && p.Currency == code {
			out := p
			out.Confidence = 0.5
			return &out
		}
	}
	return nil
}

var cities = map[string]Profile{
	"new york":      {City: "New York", Country: "United States", Currency: "USD", CostOfLivingIndex: 100, RentIndex: 100, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"san francisco": {City: "San Francisco", Country: "United States", Currency: "USD", CostOfLivingIndex: 96, RentIndex: 105, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"austin":        {City: "Austin", Country: "United States", Currency: "USD", CostOfLivingIndex: 71, RentIndex: 52, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"seattle":       {City: "Seattle", Country: "United States", Currency: "USD", CostOfLivingIndex: 85, RentIndex: 70, TaxBrackets: usBrackets, SocialCharges: usSocial},
	"london":        {City: "London", Country: "United Kingdom", Currency: "GBP", CostOfLivingIndex: 85, RentIndex: 80, TaxBrackets: ukBrackets, SocialCharges: ukSocial},
	"paris":         {City: "Paris", Country: "France", Currency: "EUR", CostOfLivingIndex: 78, RentIndex: 55, TaxBrackets: frBrackets, SocialCharges: frSocial},
	"nancy":         {City: "Nancy", Country: "France", Currency: "EUR", CostOfLivingIndex: 60, RentIndex: 22, TaxBrackets: frBrackets, SocialCharges: frSocial},
	"berlin":        {City: "Berlin", Country: "Germany", Currency: "EUR", CostOfLivingIndex: 66, RentIndex: 38, TaxBrackets: deBrackets, SocialCharges: deSocial},
	"munich":        {City: "Munich", Country: "Germany", Currency: "EUR", CostOfLivingIndex: 72, RentIndex: 48, TaxBrackets: deBrackets, SocialCharges: deSocial},
	"bangalore":     {City: "Bangalore", Country: "India", Currency: "INR", CostOfLivingIndex: 27, RentIndex: 10, TaxBrackets: inBrackets, SocialCharges: inSocial},
	"tokyo":         {City: "Tokyo", Country: "Japan", Currency: "JPY", CostOfLivingIndex: 70, RentIndex: 42, TaxBrackets: jpBrackets, SocialCharges: jpSocial},
	"toronto":       {City: "Toronto", Country: "Canada", Currency: "CAD", CostOfLivingIndex: 72, RentIndex: 46, TaxBrackets: caBrackets, SocialCharges: caSocial},
}
