package suggest

// Suggestion is a canned dispute applied in one step
type Suggestion struct {
	Title       string `json:"title" yaml:"title"`
	Reason      string `json:"reason" yaml:"reason"`
	Instruction string `json:"instruction" yaml:"instruction"`
}

var suggestionTable = map[Class][3]Suggestion{
	ClassChargedOff: {
		{
			Title:       "Charge-off balance reported",
			Reason:      "This account shows a balance after being charged off. A charged-off account must report a zero balance once the loss is written off.",
			Instruction: "Please update this account to report a $0 balance or delete it from my credit report.",
		},
		{
			Title:       "Inaccurate charge-off date",
			Reason:      "The charge-off date reported for this account is inaccurate and extends the reporting period.",
			Instruction: "Please verify the date of first delinquency and correct it, or delete this account.",
		},
		{
			Title:       "Charge-off not verifiable",
			Reason:      "I do not recognize the charge-off reported on this account and it cannot be verified.",
			Instruction: "Please provide verification of this charge-off or delete the account from my credit report.",
		},
	},
	ClassCollection: {
		{
			Title:       "Debt not validated",
			Reason:      "This collection account has not been validated and I have no record of owing this debt.",
			Instruction: "Please delete this collection account unless the furnisher can validate the debt.",
		},
		{
			Title:       "Duplicate of original account",
			Reason:      "This collection duplicates a debt already reported by the original creditor.",
			Instruction: "Please remove this duplicate collection from my credit report.",
		},
		{
			Title:       "Wrong original creditor",
			Reason:      "The original creditor information reported for this collection is missing or incorrect.",
			Instruction: "Please correct the original creditor information or delete this collection.",
		},
	},
	ClassLatePayment: {
		{
			Title:       "Late payment reported in error",
			Reason:      "This account shows late payments that I made on time.",
			Instruction: "Please correct the payment history to show all payments as on time.",
		},
		{
			Title:       "Inaccurate past due amount",
			Reason:      "The past due amount reported on this account is incorrect.",
			Instruction: "Please update the past due amount to reflect the correct figure of $0.",
		},
		{
			Title:       "Payment history inconsistent",
			Reason:      "The payment history on this account is inconsistent across the bureaus.",
			Instruction: "Please verify the payment history with the furnisher and correct all inconsistencies.",
		},
	},
	ClassGeneral: {
		{
			Title:       "Account not mine",
			Reason:      "This account does not belong to me and I have never had a relationship with this creditor.",
			Instruction: "Please delete this account from my credit report.",
		},
		{
			Title:       "Incorrect balance",
			Reason:      "The balance amount is incorrect",
			Instruction: "Please update the balance to reflect the correct amount",
		},
		{
			Title:       "Incorrect account status",
			Reason:      "The account status reported is incorrect.",
			Instruction: "Please correct the account status to reflect accurate information.",
		},
	},
}

// Suggestions returns exactly three suggestions for class. Unknown classes
// get the general set.
func Suggestions(class Class) []Suggestion {
	set, ok := suggestionTable[class]
	if !ok {
		set = suggestionTable[ClassGeneral]
	}
	return append([]Suggestion(nil), set[:]...)
}
