package helpers

import (
	"fmt"
	"time"

	"github.com/dealbridge/billing-engine/constants"
	"github.com/dealbridge/billing-engine/types/business"
)

// ParseContractDate parses a YYYY-MM-DD date string from the order record.
func ParseContractDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.ContractDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ValidateOpportunity checks the business invariants the engine depends on.
// It returns every violation found so the reviewer sees the full picture in
// one pass.
func ValidateOpportunity(opp *business.Opportunity) []string {
	var problems []string

	if opp == nil {
		return []string{"opportunity is missing"}
	}
	if opp.ID == "" {
		problems = append(problems, "missing opportunity id")
	}
	if opp.OrderType == "" {
		problems = append(problems, "missing order type")
	}
	if opp.AccountID == "" {
		problems = append(problems, "missing account id")
	}

	start, startErr := ParseContractDate(opp.ContractStart)
	if opp.ContractStart == "" {
		problems = append(problems, "missing contract start date")
	} else if startErr != nil {
		problems = append(problems, fmt.Sprintf("unparseable contract start date %q", opp.ContractStart))
	}

	end, endErr := ParseContractDate(opp.ContractEnd)
	if opp.ContractEnd == "" {
		problems = append(problems, "missing contract end date")
	} else if endErr != nil {
		problems = append(problems, fmt.Sprintf("unparseable contract end date %q", opp.ContractEnd))
	}

	if startErr == nil && endErr == nil && opp.ContractStart != "" && opp.ContractEnd != "" && !start.Before(end) {
		problems = append(problems, "contract start date must precede end date")
	}

	if len(opp.LineItems) == 0 {
		problems = append(problems, "opportunity has no line items")
	}

	for i, item := range opp.LineItems {
		if item.ProductCode == "" || item.ProductName == "" {
			problems = append(problems, fmt.Sprintf("line item %d is missing a product identifier", i+1))
		}
		if item.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("line item %d has non-positive quantity", i+1))
		}
		if item.UnitPrice < 0 {
			problems = append(problems, fmt.Sprintf("line item %d has a negative unit price", i+1))
		}
		if item.TotalPrice <= 0 {
			problems = append(problems, fmt.Sprintf("line item %d has a non-positive total price", i+1))
		}
	}

	return problems
}
