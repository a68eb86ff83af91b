package models

import "time"

// Bureau identifies one of the three consumer reporting agencies
type Bureau string

const (
	BureauTransUnion Bureau = "TransUnion"
	BureauExperian   Bureau = "Experian"
	BureauEquifax    Bureau = "Equifax"
)

// AllBureaus lists the bureaus in display order
var AllBureaus = []Bureau{BureauTransUnion, BureauExperian, BureauEquifax}

// UnknownKey is the entity key used when no identifying field is present.
// Two entities without identifiers share this key.
const UnknownKey = "unknown"

// Raw is an untyped record as it appears in the parsed report
type Raw map[string]any

type Account struct {
	Key            string   `json:"key" yaml:"key"`
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	CreditorName   string   `json:"creditor_name" yaml:"creditor_name"`
	SubscriberCode string   `json:"subscriber_code,omitempty" yaml:"subscriber_code,omitempty"`
	AccountNumber  string   `json:"account_number,omitempty" yaml:"account_number,omitempty"`
	AccountType    string   `json:"account_type,omitempty" yaml:"account_type,omitempty"`
	OwnershipType  string   `json:"ownership_type,omitempty" yaml:"ownership_type,omitempty"`
	Status         string   `json:"status,omitempty" yaml:"status,omitempty"`
	StatusCode     string   `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Balance        string   `json:"balance,omitempty" yaml:"balance,omitempty"`
	CreditLimit    string   `json:"credit_limit,omitempty" yaml:"credit_limit,omitempty"`
	HighCredit     string   `json:"high_credit,omitempty" yaml:"high_credit,omitempty"`
	PastDue        string   `json:"past_due,omitempty" yaml:"past_due,omitempty"`
	ChargeOff      string   `json:"charge_off,omitempty" yaml:"charge_off,omitempty"`
	MonthlyPayment string   `json:"monthly_payment,omitempty" yaml:"monthly_payment,omitempty"`
	DateOpened     string   `json:"date_opened,omitempty" yaml:"date_opened,omitempty"`
	DateClosed     string   `json:"date_closed,omitempty" yaml:"date_closed,omitempty"`
	DateReported   string   `json:"date_reported,omitempty" yaml:"date_reported,omitempty"`
	PaymentPattern string   `json:"payment_pattern,omitempty" yaml:"payment_pattern,omitempty"`
	Bureaus        []Bureau `json:"bureaus" yaml:"bureaus"`
	Raw            Raw      `json:"-" yaml:"-"`
}

// IsClosed reports whether the account carries a close date or a closed status
func (a Account) IsClosed() bool {
	if a.DateClosed != "" {
		return true
	}
	return containsFold(a.Status, "closed")
}

type Inquiry struct {
	Key     string   `json:"key" yaml:"key"`
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string   `json:"name" yaml:"name"`
	Date    string   `json:"date,omitempty" yaml:"date,omitempty"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Purpose string   `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	Bureaus []Bureau `json:"bureaus" yaml:"bureaus"`
	Raw     Raw      `json:"-" yaml:"-"`
}

type PublicRecord struct {
	Key          string   `json:"key" yaml:"key"`
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	Type         string   `json:"type" yaml:"type"`
	CourtName    string   `json:"court_name,omitempty" yaml:"court_name,omitempty"`
	DocketNumber string   `json:"docket_number,omitempty" yaml:"docket_number,omitempty"`
	FiledDate    string   `json:"filed_date,omitempty" yaml:"filed_date,omitempty"`
	Status       string   `json:"status,omitempty" yaml:"status,omitempty"`
	Amount       string   `json:"amount,omitempty" yaml:"amount,omitempty"`
	Bureaus      []Bureau `json:"bureaus" yaml:"bureaus"`
	Raw          Raw      `json:"-" yaml:"-"`
}

// PersonalItem is one disputable line of the personal information block
type PersonalItem struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type PersonalInfo struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Aliases           []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	BirthDate         string   `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	SSN               string   `json:"ssn,omitempty" yaml:"ssn,omitempty"`
	CurrentAddress    string   `json:"current_address,omitempty" yaml:"current_address,omitempty"`
	PreviousAddresses []string `json:"previous_addresses,omitempty" yaml:"previous_addresses,omitempty"`
	CurrentEmployer   string   `json:"current_employer,omitempty" yaml:"current_employer,omitempty"`
	PreviousEmployers []string `json:"previous_employers,omitempty" yaml:"previous_employers,omitempty"`
	Phones            []string `json:"phones,omitempty" yaml:"phones,omitempty"`
}

// Report is the pre-parsed, read-only report tree
type Report struct {
	Source        string         `json:"source,omitempty" yaml:"source,omitempty"`
	ReportDate    time.Time      `json:"report_date" yaml:"report_date"`
	Accounts      []Account      `json:"accounts" yaml:"accounts"`
	Inquiries     []Inquiry      `json:"inquiries" yaml:"inquiries"`
	PublicRecords []PublicRecord `json:"public_records" yaml:"public_records"`
	PersonalInfo  PersonalInfo   `json:"personal_info" yaml:"personal_info"`
}

// FindAccount returns the account with the given key
func (r *Report) FindAccount(key string) (Account, bool) {
	for _, a := range r.Accounts {
		if a.Key == key {
			return a, true
		}
	}
	return Account{}, false
}

// FindInquiry returns the inquiry with the given key
func (r *Report) FindInquiry(key string) (Inquiry, bool) {
	for _, q := range r.Inquiries {
		if q.Key == key {
			return q, true
		}
	}
	return Inquiry{}, false
}

// FindPublicRecord returns the public record with the given key
func (r *Report) FindPublicRecord(key string) (PublicRecord, bool) {
	for _, p := range r.PublicRecords {
		if p.Key == key {
			return p, true
		}
	}
	return PublicRecord{}, false
}
