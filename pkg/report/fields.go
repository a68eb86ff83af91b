package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// FieldTable maps a canonical field to the raw keys it may appear under,
// tried in order. Dotted keys descend into nested objects; when a step hits a
// list, its first element is used.
type FieldTable map[string][]string

// Resolved holds the canonical values of one raw record
type Resolved map[string]string

// Get returns the canonical value or the empty string
func (r Resolved) Get(field string) string {
	return r[field]
}

// Resolve evaluates every canonical field of the table against raw once
func (t FieldTable) Resolve(raw models.Raw) Resolved {
	out := make(Resolved, len(t))
	for field, candidates := range t {
		for _, key := range candidates {
			if v, ok := lookup(raw, key); ok && v != "" {
				out[field] = v
				break
			}
		}
	}
	return out
}

var accountFields = FieldTable{
	"id":              {"@_AccountIdentifier", "@CreditLiabilityID", "accountId", "account_id", "id"},
	"creditor":        {"_CREDITOR.@_Name", "@_SubscriberName", "creditorName", "creditor_name", "creditor", "subscriberName"},
	"subscriber_code": {"@_SubscriberCode", "subscriberCode", "subscriber_code"},
	"account_number":  {"@_AccountNumber", "accountNumber", "account_number", "number"},
	"account_type":    {"@_AccountType", "@CreditLoanType", "accountType", "account_type", "type"},
	"ownership_type":  {"@_AccountOwnershipType", "ownershipType", "ownership_type", "ecoa"},
	"status":          {"@_AccountStatusType", "_CURRENT_RATING.@_Type", "accountStatus", "account_status", "status"},
	"status_code":     {"@_AccountStatusCode", "_CURRENT_RATING.@_Code", "statusCode", "status_code"},
	"balance":         {"@_UnpaidBalanceAmount", "currentBalance", "current_balance", "balance"},
	"credit_limit":    {"@_CreditLimitAmount", "creditLimit", "credit_limit"},
	"high_credit":     {"@_HighCreditAmount", "highCredit", "high_credit", "highBalance"},
	"past_due":        {"@_PastDueAmount", "pastDue", "past_due", "amountPastDue"},
	"charge_off":      {"@_ChargeOffAmount", "chargeOffAmount", "charge_off_amount"},
	"monthly_payment": {"@_MonthlyPaymentAmount", "monthlyPayment", "monthly_payment"},
	"date_opened":     {"@_AccountOpenedDate", "dateOpened", "date_opened", "openDate"},
	"date_closed":     {"@_AccountClosedDate", "dateClosed", "date_closed", "closedDate"},
	"date_reported":   {"@_AccountReportedDate", "dateReported", "date_reported", "reportedDate"},
	"payment_pattern": {"_PAYMENT_PATTERN.@_Data", "paymentPattern", "payment_pattern", "paymentHistory"},
}

var inquiryFields = FieldTable{
	"id":      {"@CreditInquiryID", "@_InquiryIdentifier", "inquiryId", "inquiry_id", "id"},
	"name":    {"@_Name", "_CREDITOR.@_Name", "subscriberName", "creditorName", "name"},
	"date":    {"@_Date", "inquiryDate", "inquiry_date", "date"},
	"type":    {"@_Type", "@CreditBusinessType", "inquiryType", "type"},
	"purpose": {"@_PurposeType", "purpose", "purposeType"},
}

var publicRecordFields = FieldTable{
	"id":     {"@CreditPublicRecordID", "@_RecordIdentifier", "recordId", "record_id", "id"},
	"type":   {"@_Type", "recordType", "record_type", "type"},
	"court":  {"@_CourtName", "courtName", "court_name", "court"},
	"docket": {"@_DocketIdentifier", "docketNumber", "docket_number", "docket"},
	"filed":  {"@_FiledDate", "filedDate", "filed_date", "dateFiled"},
	"status": {"@_DispositionType", "status", "disposition"},
	"amount": {"@_LegalObligationAmount", "amount", "liabilityAmount"},
}

var personalFields = FieldTable{
	"name":             {"_NAME.@_UnparsedName", "@_UnparsedName", "fullName", "full_name", "name"},
	"birth_date":       {"@_BirthDate", "birthDate", "birth_date", "dob", "dateOfBirth"},
	"ssn":              {"@_SSN", "ssn", "socialSecurityNumber"},
	"current_address":  {"_RESIDENCE.@_StreetAddress", "currentAddress", "current_address", "address"},
	"current_employer": {"EMPLOYER.@_Name", "currentEmployer", "current_employer", "employer"},
}

// collection keys, tried in order at the root of the report and under CREDIT_RESPONSE
var (
	accountCollections      = []string{"CREDIT_LIABILITY", "accounts", "tradelines", "tradeLines"}
	inquiryCollections      = []string{"CREDIT_INQUIRY", "inquiries"}
	publicRecordCollections = []string{"CREDIT_PUBLIC_RECORD", "publicRecords", "public_records"}
	personalCollections     = []string{"BORROWER", "personalInfo", "personal_info", "personal"}
	reportDateKeys          = []string{"@CreditReportFirstIssuedDate", "reportDate", "report_date", "date"}
	bureauKeys              = []string{"CREDIT_REPOSITORY", "bureaus", "repositories", "sources"}
)

// lookup walks a dotted path through nested maps
func lookup(raw map[string]any, path string) (string, bool) {
	var cur any = raw
	for _, part := range strings.Split(path, ".") {
		cur = firstElement(cur)
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[part]
		if !ok {
			return "", false
		}
	}
	return stringify(firstElement(cur))
}

func firstElement(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(x), true
	}
}

// stringList collects string values from a list field, or a single value
func stringList(raw map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			if s, ok := stringify(v); ok && s != "" {
				return []string{s}
			}
			continue
		}
		var out []string
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				for _, inner := range []string{"@_StreetAddress", "@_Name", "address", "name", "value"} {
					if s, ok := lookup(m, inner); ok && s != "" {
						out = append(out, s)
						break
					}
				}
				continue
			}
			if s, ok := stringify(item); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
