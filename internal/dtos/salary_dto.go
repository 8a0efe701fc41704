package dtos

// NetIncomeRequest asks for a gross -> net breakdown for a salary at a location.
type NetIncomeRequest struct {
	GrossSalary float64 `json:"gross_salary" binding:"required,gt=0"`
	Location    string  `json:"location" binding:"required"`
	WorkMode    string  `json:"work_mode"` // onsite | hybrid | remote
	Currency    string  `json:"currency" binding:"omitempty,currencycode"`
}

// SalaryAnalysisRequest analyzes a free-text salary string against a location.
type SalaryAnalysisRequest struct {
	Salary   string `json:"salary"`
	Location string `json:"location" binding:"required"`
}

// ConvertRequest converts an amount between two currencies.
type ConvertRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	From   string  `json:"from" binding:"required,currencycode"`
	To     string  `json:"to" binding:"required,currencycode"`
}
