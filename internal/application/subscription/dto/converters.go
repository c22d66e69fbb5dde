package dto

import (
	"carsub/internal/domain/subscription"
)

// ToSubscriptionDTO converts a subscription projection to its wire form.
func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	attrs := sub.Attributes()
	return &SubscriptionDTO{
		ID:                    attrs.ID,
		State:                 attrs.State.String(),
		ContactID:             attrs.ContactID,
		CarID:                 attrs.CarID,
		Type:                  attrs.Type.String(),
		Term:                  attrs.Term,
		SigningDate:           attrs.SigningDate,
		TermType:              attrs.TermType.String(),
		Deposit:               attrs.Deposit,
		Amount:                attrs.Amount,
		MileagePackage:        attrs.MileagePackage,
		MileagePackageFee:     attrs.MileagePackageFee,
		AdditionalMileageFee:  attrs.AdditionalMileageFee,
		HandoverFirstName:     attrs.HandoverFirstName,
		HandoverLastName:      attrs.HandoverLastName,
		HandoverHouseNumber:   attrs.HandoverHouseNumber,
		HandoverStreet:        attrs.HandoverStreet,
		HandoverCity:          attrs.HandoverCity,
		HandoverZip:           attrs.HandoverZip,
		HandoverAddressExtra:  attrs.HandoverAddressExtra,
		PreferredHandoverDate: attrs.PreferredHandoverDate,
		TerminationReason:     attrs.TerminationReason,
		TerminationDate:       attrs.TerminationDate,
		CreatedAt:             attrs.CreatedAt,
		UpdatedAt:             attrs.UpdatedAt,
	}
}

// ToSubscriptionDTOList converts a slice of projections, returning an empty
// slice for empty input so the JSON encodes as [] rather than null.
func ToSubscriptionDTOList(subs []*subscription.Subscription) []*SubscriptionDTO {
	dtos := make([]*SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		if sub != nil {
			dtos = append(dtos, ToSubscriptionDTO(sub))
		}
	}
	return dtos
}

// ToEventDTO converts an event log entry to its wire form.
func ToEventDTO(event *subscription.Event) *SubscriptionEventDTO {
	if event == nil {
		return nil
	}
	return &SubscriptionEventDTO{
		ID:             event.ID,
		Name:           event.Name.String(),
		Actor:          event.Actor,
		Notes:          event.Notes,
		Time:           event.Time,
		Snapshot:       ToSubscriptionDTO(event.Snapshot),
		SubscriptionID: event.SubscriptionID,
	}
}

// ToEventDTOList converts a slice of events.
func ToEventDTOList(events []*subscription.Event) []*SubscriptionEventDTO {
	dtos := make([]*SubscriptionEventDTO, 0, len(events))
	for _, event := range events {
		if event != nil {
			dtos = append(dtos, ToEventDTO(event))
		}
	}
	return dtos
}

// ToStateStrings converts states to their wire strings.
func ToStateStrings(states []subscription.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.String())
	}
	return out
}
