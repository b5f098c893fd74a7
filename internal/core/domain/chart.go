package domain

// ChartAccount is one predefined entry of the default chart of accounts.
// The type is stored explicitly because a few class-4 accounts (customers,
// deductible VAT) deviate from the class default.
type ChartAccount struct {
	Code string
	Name string
	Type AccountType
}

// DefaultChart is the minimal plan comptable seeded for every new restaurant.
var DefaultChart = []ChartAccount{
	// Class 1 - equity
	{Code: "101", Name: "Capital", Type: Equity},
	{Code: "106", Name: "Réserves", Type: Equity},
	{Code: "120", Name: "Résultat de l'exercice", Type: Equity},
	{Code: "164", Name: "Emprunts auprès des établissements de crédit", Type: Liability},

	// Class 2 - fixed assets
	{Code: "215", Name: "Matériel de cuisine et outillage", Type: Asset},
	{Code: "2184", Name: "Mobilier de salle", Type: Asset},

	// Class 3 - inventory
	{Code: "31", Name: "Matières premières", Type: Asset},
	{Code: "37", Name: "Stocks de marchandises", Type: Asset},

	// Class 4 - third parties
	{Code: "401", Name: "Fournisseurs", Type: Liability},
	{Code: "411", Name: "Clients", Type: Asset},
	{Code: "421", Name: "Personnel - rémunérations dues", Type: Liability},
	{Code: "44566", Name: "TVA déductible", Type: Asset},
	{Code: "44571", Name: "TVA collectée", Type: Liability},

	// Class 5 - financial
	{Code: "512", Name: "Banque", Type: Asset},
	{Code: "530", Name: "Caisse", Type: Asset},

	// Class 6 - expenses
	{Code: "601", Name: "Achats de matières premières", Type: Expense},
	{Code: "606", Name: "Achats non stockés (énergie, fournitures)", Type: Expense},
	{Code: "613", Name: "Locations", Type: Expense},
	{Code: "641", Name: "Rémunérations du personnel", Type: Expense},

	// Class 7 - revenue
	{Code: "706", Name: "Prestations de services", Type: Revenue},
	{Code: "707", Name: "Ventes de marchandises", Type: Revenue},
}

// ResultAccountCode is the pseudo-equity account carrying the current
// period's undistributed result on the balance sheet.
const ResultAccountCode = "120"

// LookupChartAccount finds a default chart entry by code.
func LookupChartAccount(code string) *ChartAccount {
	for i := range DefaultChart {
		if DefaultChart[i].Code == code {
			return &DefaultChart[i]
		}
	}
	return nil
}
