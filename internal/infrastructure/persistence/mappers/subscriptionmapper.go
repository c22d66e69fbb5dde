package mappers

import (
	"fmt"

	"carsub/internal/domain/subscription"
	"carsub/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.Reconstruct(subscription.Attributes{
		ID:                    model.ID,
		State:                 subscription.State(model.State),
		ContactID:             model.ContactID,
		CarID:                 model.CarID,
		Type:                  subscription.Type(model.Type),
		Term:                  model.Term,
		SigningDate:           model.SigningDate,
		TermType:              subscription.TermType(model.TermType),
		Deposit:               model.Deposit,
		Amount:                model.Amount,
		MileagePackage:        model.MileagePackage,
		MileagePackageFee:     model.MileagePackageFee,
		AdditionalMileageFee:  model.AdditionalMileageFee,
		HandoverFirstName:     model.HandoverFirstName,
		HandoverLastName:      model.HandoverLastName,
		HandoverHouseNumber:   model.HandoverHouseNumber,
		HandoverStreet:        model.HandoverStreet,
		HandoverCity:          model.HandoverCity,
		HandoverZip:           model.HandoverZip,
		HandoverAddressExtra:  model.HandoverAddressExtra,
		PreferredHandoverDate: model.PreferredHandoverDate,
		TerminationReason:     model.TerminationReason,
		TerminationDate:       model.TerminationDate,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription %s: %w", model.ID, err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	attrs := entity.Attributes()
	return &models.SubscriptionModel{
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

func (m *SubscriptionMapperImpl) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
