package types

// BorrowingTerms is derived on every query and never persisted.
type BorrowingTerms struct {
	Borrow    Asset `json:"borrow"`
	Interest  Asset `json:"interest"`
	Repayment Asset `json:"repayment"`
}
