package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/types/business"
)

// ReviewService summarizes a generated action list for human reviewers.
type ReviewService struct{}

// NewReviewService creates a new review service.
func NewReviewService() *ReviewService {
	return &ReviewService{}
}

// BuildReviewSheet aggregates the action list. ManualReviewRequired is true
// iff any action requires review, carries high risk, or has "ERROR" in its
// description.
func (s *ReviewService) BuildReviewSheet(opp *business.Opportunity, actions []business.BillingAction) *business.ReviewSheet {
	sheet := &business.ReviewSheet{
		OpportunityID: opportunityID(opp),
		TotalActions:  len(actions),
		ActionsByType: make(map[string]int, len(actions)),
	}

	for _, action := range actions {
		sheet.ActionsByType[string(action.Type)]++

		if action.AmountCents != nil {
			if action.Type == business.ActionApplyCredit {
				sheet.TotalAmountCents -= *action.AmountCents
			} else {
				sheet.TotalAmountCents += *action.AmountCents
			}
		}

		flagged := action.RequiresReview ||
			action.RiskLevel == business.RiskHigh ||
			strings.Contains(action.Description, "ERROR")
		if flagged {
			sheet.ManualReviewRequired = true
		}
		if action.RiskLevel == business.RiskHigh || strings.Contains(action.Description, "ERROR") {
			sheet.Warnings = append(sheet.Warnings, action.Description)
		}
	}

	return sheet
}

// RenderText writes a plain-text review sheet.
func (s *ReviewService) RenderText(w io.Writer, sheet *business.ReviewSheet, actions []business.BillingAction) error {
	fmt.Fprintf(w, "Opportunity %s: %d billing actions, net impact %s\n",
		sheet.OpportunityID, sheet.TotalActions, helpers.FormatCents(sheet.TotalAmountCents))
	if sheet.ManualReviewRequired {
		fmt.Fprintln(w, "MANUAL REVIEW REQUIRED")
	}
	for _, warning := range sheet.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}

	for i, action := range actions {
		amount := "-"
		if action.AmountCents != nil {
			amount = helpers.FormatCents(*action.AmountCents)
		}
		review := ""
		if action.RequiresReview {
			review = " [review]"
		}
		fmt.Fprintf(w, "%2d. %-20s %-10s %s%s\n", i+1, action.Type, amount, action.Description, review)
		for _, note := range action.Notes {
			fmt.Fprintf(w, "      - %s\n", note)
		}
	}

	return nil
}

// WriteCSV exports the action list as CSV for spreadsheet review.
func (s *ReviewService) WriteCSV(w io.Writer, opp *business.Opportunity, actions []business.BillingAction) error {
	cw := csv.NewWriter(w)

	header := []string{"opportunity_id", "position", "type", "description", "amount_cents", "risk_level", "requires_review", "notes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, action := range actions {
		amount := ""
		if action.AmountCents != nil {
			amount = strconv.FormatInt(*action.AmountCents, 10)
		}
		record := []string{
			opportunityID(opp),
			strconv.Itoa(i + 1),
			string(action.Type),
			action.Description,
			amount,
			string(action.RiskLevel),
			strconv.FormatBool(action.RequiresReview),
			strings.Join(action.Notes, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
