// Package report turns a pre-parsed credit report tree into typed entities.
//
// No schema validation happens here: fields are resolved through declarative
// candidate tables and anything missing is left empty for the formatters.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// Load reads a report tree from a .json or .yaml file
func Load(path string) (*models.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var tree map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse report JSON %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse report YAML %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	r := Parse(tree)
	r.Source = path
	return r, nil
}

// Parse projects a raw report tree onto the typed model
func Parse(tree map[string]any) *models.Report {
	root := tree
	if inner, ok := tree["CREDIT_RESPONSE"].(map[string]any); ok {
		root = inner
	}

	r := &models.Report{ReportDate: time.Now()}
	for _, key := range reportDateKeys {
		if v, ok := lookup(root, key); ok {
			if t, ok := format.ParseDate(v); ok {
				r.ReportDate = t
				break
			}
		}
	}

	for _, raw := range records(root, accountCollections) {
		r.Accounts = append(r.Accounts, parseAccount(raw))
	}
	for _, raw := range records(root, inquiryCollections) {
		r.Inquiries = append(r.Inquiries, parseInquiry(raw))
	}
	for _, raw := range records(root, publicRecordCollections) {
		r.PublicRecords = append(r.PublicRecords, parsePublicRecord(raw))
	}
	if raw := firstRecord(root, personalCollections); raw != nil {
		r.PersonalInfo = parsePersonal(raw)
	}
	return r
}

func records(root map[string]any, keys []string) []models.Raw {
	for _, key := range keys {
		v, ok := root[key]
		if !ok {
			continue
		}
		switch x := v.(type) {
		case []any:
			out := make([]models.Raw, 0, len(x))
			for _, item := range x {
				if m, ok := item.(map[string]any); ok {
					out = append(out, models.Raw(m))
				}
			}
			return out
		case map[string]any:
			return []models.Raw{models.Raw(x)}
		}
	}
	return nil
}

func firstRecord(root map[string]any, keys []string) models.Raw {
	recs := records(root, keys)
	if len(recs) == 0 {
		return nil
	}
	return recs[0]
}

func parseAccount(raw models.Raw) models.Account {
	f := accountFields.Resolve(raw)
	a := models.Account{
		ID:             f.Get("id"),
		CreditorName:   f.Get("creditor"),
		SubscriberCode: f.Get("subscriber_code"),
		AccountNumber:  f.Get("account_number"),
		AccountType:    f.Get("account_type"),
		OwnershipType:  f.Get("ownership_type"),
		Status:         f.Get("status"),
		StatusCode:     f.Get("status_code"),
		Balance:        f.Get("balance"),
		CreditLimit:    f.Get("credit_limit"),
		HighCredit:     f.Get("high_credit"),
		PastDue:        f.Get("past_due"),
		ChargeOff:      f.Get("charge_off"),
		MonthlyPayment: f.Get("monthly_payment"),
		DateOpened:     f.Get("date_opened"),
		DateClosed:     f.Get("date_closed"),
		DateReported:   f.Get("date_reported"),
		PaymentPattern: f.Get("payment_pattern"),
		Bureaus:        bureaus(raw),
		Raw:            raw,
	}
	if a.Status == "" && a.StatusCode != "" {
		a.Status = format.Status(a.StatusCode)
	}
	a.Key = EntityKey(a.ID, a.CreditorName, a.AccountNumber)
	return a
}

func parseInquiry(raw models.Raw) models.Inquiry {
	f := inquiryFields.Resolve(raw)
	q := models.Inquiry{
		ID:      f.Get("id"),
		Name:    f.Get("name"),
		Date:    f.Get("date"),
		Type:    f.Get("type"),
		Purpose: f.Get("purpose"),
		Bureaus: bureaus(raw),
		Raw:     raw,
	}
	q.Key = EntityKey(q.ID, q.Name, q.Date)
	return q
}

func parsePublicRecord(raw models.Raw) models.PublicRecord {
	f := publicRecordFields.Resolve(raw)
	p := models.PublicRecord{
		ID:           f.Get("id"),
		Type:         f.Get("type"),
		CourtName:    f.Get("court"),
		DocketNumber: f.Get("docket"),
		FiledDate:    f.Get("filed"),
		Status:       f.Get("status"),
		Amount:       f.Get("amount"),
		Bureaus:      bureaus(raw),
		Raw:          raw,
	}
	p.Key = EntityKey(p.ID, p.Type, p.DocketNumber)
	return p
}

func parsePersonal(raw models.Raw) models.PersonalInfo {
	f := personalFields.Resolve(raw)
	p := models.PersonalInfo{
		Name:            f.Get("name"),
		BirthDate:       f.Get("birth_date"),
		SSN:             f.Get("ssn"),
		CurrentAddress:  f.Get("current_address"),
		CurrentEmployer: f.Get("current_employer"),
		Aliases:         stringList(raw, "_ALIAS", "aliases", "akas"),
		Phones:          stringList(raw, "_CONTACT_POINT", "phones", "phoneNumbers"),
	}

	// MISMO style: one list with a residency / current indicator per entry
	if current, prior, ok := splitByIndicator(raw["_RESIDENCE"], "@BorrowerResidencyType", "current", "@_StreetAddress"); ok {
		p.CurrentAddress = current
		p.PreviousAddresses = prior
	} else {
		p.PreviousAddresses = stringList(raw, "previousAddresses", "previous_addresses", "formerAddresses")
	}
	if current, prior, ok := splitByIndicator(raw["EMPLOYER"], "@EmploymentCurrentIndicator", "y", "@_Name"); ok {
		p.CurrentEmployer = current
		p.PreviousEmployers = prior
	} else {
		p.PreviousEmployers = stringList(raw, "previousEmployers", "previous_employers", "formerEmployers")
	}
	return p
}

func splitByIndicator(v any, indicator, currentValue, valueKey string) (string, []string, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return "", nil, false
	}
	var current string
	var prior []string
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value, _ := lookup(m, valueKey)
		if value == "" {
			continue
		}
		flag, _ := lookup(m, indicator)
		if current == "" && strings.EqualFold(flag, currentValue) {
			current = value
		} else {
			prior = append(prior, value)
		}
	}
	return current, prior, true
}

// bureaus reads the bureau list of a record. Records that name no bureau are
// treated as reported to all three.
func bureaus(raw models.Raw) []models.Bureau {
	var names []string
	for _, key := range bureauKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		items, ok := v.([]any)
		if !ok {
			items = []any{v}
		}
		for _, item := range items {
			switch x := item.(type) {
			case string:
				names = append(names, x)
			case map[string]any:
				if s, ok := lookup(x, "@_SourceType"); ok {
					names = append(names, s)
				} else if s, ok := lookup(x, "name"); ok {
					names = append(names, s)
				}
			}
		}
		break
	}

	seen := map[models.Bureau]bool{}
	var out []models.Bureau
	for _, name := range names {
		b, ok := NormalizeBureau(name)
		if ok && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return append([]models.Bureau(nil), models.AllBureaus...)
	}
	return out
}

// NormalizeBureau maps free-form bureau names such as "TU" or "EQUIFAX" to a Bureau
func NormalizeBureau(name string) (models.Bureau, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "tu" || strings.HasPrefix(n, "trans"):
		return models.BureauTransUnion, true
	case n == "ex" || n == "xp" || strings.HasPrefix(n, "exp"):
		return models.BureauExperian, true
	case n == "eq" || n == "efx" || strings.HasPrefix(n, "equ"):
		return models.BureauEquifax, true
	}
	return "", false
}

// EntityKey returns the primary id when present, otherwise a slug of the
// secondary identifiers, otherwise models.UnknownKey. Distinct entities with
// no identifiers collide on models.UnknownKey.
func EntityKey(primary string, secondary ...string) string {
	if k := slug(primary); k != "" {
		return k
	}
	var parts []string
	for _, s := range secondary {
		if k := slug(s); k != "" {
			parts = append(parts, k)
		}
	}
	if len(parts) == 0 {
		return models.UnknownKey
	}
	return strings.Join(parts, "-")
}

func slug(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
