package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
)

// PaymentRow is one payment with the payer's name.
type PaymentRow struct {
	domainPayment.Payment
	MemberName string
}

// GetPaymentListResult carries the payments page.
type GetPaymentListResult struct {
	Payments []PaymentRow
	Total    float64
	Members  []domainMember.Member // for the payer drop-down
}

// GetPaymentListDeps holds dependencies for GetPaymentList.
type GetPaymentListDeps struct {
	PaymentStore PaymentStore
	MemberStore  MemberStore
}

// QueryGetPaymentList lists payments newest first with member names.
// PRE: none
// POST: Total is the sum of every listed amount
func QueryGetPaymentList(ctx context.Context, deps GetPaymentListDeps) (GetPaymentListResult, error) {
	payments, err := deps.PaymentStore.List(ctx, payment.ListFilter{Newest: true})
	if err != nil {
		return GetPaymentListResult{}, err
	}
	members, err := deps.MemberStore.List(ctx, member.ListFilter{Order: member.OrderByName})
	if err != nil {
		return GetPaymentListResult{}, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	res := GetPaymentListResult{Members: members}
	for _, p := range payments {
		res.Payments = append(res.Payments, PaymentRow{Payment: p, MemberName: names[p.MemberID]})
		res.Total += p.Amount
	}
	return res, nil
}
