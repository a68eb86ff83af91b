package models

import (
	"fmt"
	"strings"
)

const PersonalInfoKey = "personal-info"

// Items flattens the personal information block into disputable sub-items.
// Keys are stable across loads of the same report.
func (p PersonalInfo) Items() []PersonalItem {
	var items []PersonalItem
	add := func(key, label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		items = append(items, PersonalItem{Key: key, Label: label, Value: value})
	}

	add("name", "Name", p.Name)
	for i, alias := range p.Aliases {
		add(fmt.Sprintf("alias-%d", i), "Also Known As", alias)
	}
	add("birth-date", "Date of Birth", p.BirthDate)
	add("ssn", "SSN", p.SSN)
	add("current-address", "Current Address", p.CurrentAddress)
	for i, addr := range p.PreviousAddresses {
		add(fmt.Sprintf("previous-address-%d", i), "Previous Address", addr)
	}
	add("current-employer", "Current Employer", p.CurrentEmployer)
	for i, emp := range p.PreviousEmployers {
		add(fmt.Sprintf("previous-employer-%d", i), "Previous Employer", emp)
	}
	for i, phone := range p.Phones {
		add(fmt.Sprintf("phone-%d", i), "Phone", phone)
	}
	return items
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
