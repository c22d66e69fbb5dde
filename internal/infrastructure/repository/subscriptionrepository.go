package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carsub/internal/domain/subscription"
	"carsub/internal/infrastructure/persistence/mappers"
	"carsub/internal/infrastructure/persistence/models"
	"carsub/internal/shared/db"
	"carsub/internal/shared/errors"
	"carsub/internal/shared/id"
	"carsub/internal/shared/logger"
)

// SubscriptionRepositoryImpl is the transactional storage engine for the
// subscription projection and its append-only event log. Every write keeps
// the two tables consistent within a single transaction.
type SubscriptionRepositoryImpl struct {
	db          *gorm.DB
	txManager   *db.TransactionManager
	mapper      mappers.SubscriptionMapper
	eventMapper mappers.SubscriptionEventMapper
	logger      logger.Interface
}

func NewSubscriptionRepository(
	gormDB *gorm.DB,
	logger logger.Interface,
) subscription.Repository {
	mapper := mappers.NewSubscriptionMapper()
	return &SubscriptionRepositoryImpl{
		db:          gormDB,
		txManager:   db.NewTransactionManager(gormDB),
		mapper:      mapper,
		eventMapper: mappers.NewSubscriptionEventMapper(mapper),
		logger:      logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, inputs subscription.CreateInputs) (*subscription.Subscription, error) {
	subID := inputs.Subscription.ID
	if subID == "" {
		generated, err := id.NewSubscriptionID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
		}
		subID = generated
	}

	var created models.SubscriptionModel
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := r.txManager.GetTx(ctx)

		attrs := inputs.Subscription
		model := models.SubscriptionModel{
			ID:                    subID,
			State:                 subscription.StateCreated.String(),
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
		}

		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		// Read back so the snapshot carries database-assigned timestamps.
		if err := tx.Where("id = ?", subID).First(&created).Error; err != nil {
			return err
		}

		return r.appendEvent(tx, inputs.Event, &created)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(fmt.Sprintf("create Subscription<%s>", subID))
		}
		r.logger.Errorw("failed to create subscription", "id", subID, "error", err)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return r.mapper.ToEntity(&created)
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, subID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("id = ?", subID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError(fmt.Sprintf("Subscription<%s>", subID))
		}
		r.logger.Errorw("failed to get subscription", "id", subID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, inputs subscription.UpdateInputs) (*subscription.Subscription, error) {
	var updated models.SubscriptionModel
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := r.txManager.GetTx(ctx)

		var current models.SubscriptionModel
		if err := tx.Where("id = ?", inputs.ID).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError(fmt.Sprintf("Subscription<%s>", inputs.ID))
			}
			return err
		}

		columns := patchColumns(inputs.Subscription)
		if len(columns) > 0 {
			if err := tx.Model(&models.SubscriptionModel{}).
				Where("id = ?", inputs.ID).
				Updates(columns).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("id = ?", inputs.ID).First(&updated).Error; err != nil {
			return err
		}

		return r.appendEvent(tx, inputs.Event, &updated)
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		r.logger.Errorw("failed to update subscription", "id", inputs.ID, "error", err)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	return r.mapper.ToEntity(&updated)
}

func (r *SubscriptionRepositoryImpl) AddEvent(ctx context.Context, inputs subscription.AddEventInputs) (*subscription.Event, error) {
	var eventModel *models.SubscriptionEventModel
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := r.txManager.GetTx(ctx)

		var current models.SubscriptionModel
		if err := tx.Where("id = ?", inputs.ID).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError(fmt.Sprintf("Subscription<%s>", inputs.ID))
			}
			return err
		}

		eventID, err := id.NewEventID()
		if err != nil {
			return fmt.Errorf("failed to generate event ID: %w", err)
		}
		model, err := r.eventMapper.ToModel(eventID, inputs.Event, &current)
		if err != nil {
			return err
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		eventModel = model
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		r.logger.Errorw("failed to add subscription event", "id", inputs.ID, "error", err)
		return nil, fmt.Errorf("failed to add subscription event: %w", err)
	}

	return r.eventMapper.ToEntity(eventModel)
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filters subscription.ListFilters, count, offset int) ([]*subscription.Subscription, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionModel{})

	if len(filters.State) > 0 {
		query = query.Where("state IN ?", stateStrings(filters.State))
	}
	if len(filters.CarID) > 0 {
		query = query.Where("car_id IN ?", filters.CarID)
	}
	if len(filters.ContactID) > 0 {
		query = query.Where("contact_id IN ?", filters.ContactID)
	}
	if len(filters.SubscriptionID) > 0 {
		query = query.Where("id IN ?", filters.SubscriptionID)
	}
	if len(filters.Type) > 0 {
		query = query.Where("type IN ?", typeStrings(filters.Type))
	}

	var subModels []*models.SubscriptionModel
	if err := query.Order("created_at ASC").Limit(count).Offset(offset).Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subModels)
}

func (r *SubscriptionRepositoryImpl) ListEvents(ctx context.Context, filters subscription.EventFilters, count int, order subscription.SortOrder) ([]*subscription.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionEventModel{})

	if len(filters.SubscriptionID) > 0 {
		query = query.Where("subscription_id IN ?", filters.SubscriptionID)
	}
	if len(filters.Name) > 0 {
		query = query.Where("name IN ?", eventNameStrings(filters.Name))
	}
	if filters.From != nil {
		query = query.Where("time >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("time <= ?", *filters.To)
	}

	direction := "ASC"
	if order == subscription.SortDescending {
		direction = "DESC"
	}

	// Seq breaks ties between events sharing a timestamp so the order
	// always reflects insertion order.
	var eventModels []*models.SubscriptionEventModel
	if err := query.Order("time " + direction + ", seq " + direction).Limit(count).Find(&eventModels).Error; err != nil {
		r.logger.Errorw("failed to list subscription events", "error", err)
		return nil, fmt.Errorf("failed to list subscription events: %w", err)
	}

	return r.eventMapper.ToEntities(eventModels)
}

// appendEvent inserts an event row snapshotting the given projection inside
// the caller's transaction.
func (r *SubscriptionRepositoryImpl) appendEvent(tx *gorm.DB, inputs subscription.EventInputs, snapshot *models.SubscriptionModel) error {
	eventID, err := id.NewEventID()
	if err != nil {
		return fmt.Errorf("failed to generate event ID: %w", err)
	}
	model, err := r.eventMapper.ToModel(eventID, inputs, snapshot)
	if err != nil {
		return err
	}
	return tx.Create(model).Error
}

// patchColumns translates a sparse patch into the column map passed to
// Updates. Nil fields stay out of the map and remain untouched.
func patchColumns(patch subscription.Patch) map[string]interface{} {
	columns := make(map[string]interface{})
	if patch.State != nil {
		columns["state"] = patch.State.String()
	}
	if patch.TerminationReason != nil {
		columns["termination_reason"] = *patch.TerminationReason
	}
	if patch.TerminationDate != nil {
		columns["termination_date"] = *patch.TerminationDate
	}
	return columns
}

func stateStrings(states []subscription.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.String())
	}
	return out
}

func typeStrings(types []subscription.Type) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}

func eventNameStrings(names []subscription.EventName) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.String())
	}
	return out
}
