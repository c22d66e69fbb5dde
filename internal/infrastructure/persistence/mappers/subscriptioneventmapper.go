package mappers

import (
	"encoding/json"
	"fmt"

	"carsub/internal/domain/subscription"
	"carsub/internal/infrastructure/persistence/models"
)

type SubscriptionEventMapper interface {
	ToEntity(model *models.SubscriptionEventModel) (*subscription.Event, error)
	ToModel(id string, inputs subscription.EventInputs, snapshot *models.SubscriptionModel) (*models.SubscriptionEventModel, error)
	ToEntities(models []*models.SubscriptionEventModel) ([]*subscription.Event, error)
}

type SubscriptionEventMapperImpl struct {
	subscriptionMapper SubscriptionMapper
}

func NewSubscriptionEventMapper(subscriptionMapper SubscriptionMapper) SubscriptionEventMapper {
	return &SubscriptionEventMapperImpl{subscriptionMapper: subscriptionMapper}
}

func (m *SubscriptionEventMapperImpl) ToEntity(model *models.SubscriptionEventModel) (*subscription.Event, error) {
	if model == nil {
		return nil, nil
	}

	var snapshotModel models.SubscriptionModel
	if err := json.Unmarshal(model.Snapshot, &snapshotModel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot of event %s: %w", model.ID, err)
	}
	snapshot, err := m.subscriptionMapper.ToEntity(&snapshotModel)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot of event %s: %w", model.ID, err)
	}

	return &subscription.Event{
		ID:             model.ID,
		Name:           subscription.EventName(model.Name),
		Actor:          model.Actor,
		Notes:          model.Notes,
		Time:           model.Time,
		Snapshot:       snapshot,
		SubscriptionID: model.SubscriptionID,
	}, nil
}

// ToModel builds an event row with the given identifier and the snapshot
// serialized from the projection row committed in the same transaction.
func (m *SubscriptionEventMapperImpl) ToModel(id string, inputs subscription.EventInputs, snapshot *models.SubscriptionModel) (*models.SubscriptionEventModel, error) {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return &models.SubscriptionEventModel{
		ID:             id,
		Name:           inputs.Name.String(),
		Actor:          inputs.Actor,
		Notes:          inputs.Notes,
		Time:           inputs.Time,
		Snapshot:       snapshotJSON,
		SubscriptionID: snapshot.ID,
	}, nil
}

func (m *SubscriptionEventMapperImpl) ToEntities(eventModels []*models.SubscriptionEventModel) ([]*subscription.Event, error) {
	entities := make([]*subscription.Event, 0, len(eventModels))
	for _, model := range eventModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
