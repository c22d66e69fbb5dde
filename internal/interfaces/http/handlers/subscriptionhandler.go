package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	subdto "carsub/internal/application/subscription/dto"
	"carsub/internal/application/subscription/usecases"
	"carsub/internal/domain/shared"
	"carsub/internal/domain/subscription"
	"carsub/internal/interfaces/http/middleware"
	"carsub/internal/shared/logger"
	"carsub/internal/shared/utils"
)

// SubscriptionHandler exposes the subscription lifecycle over HTTP.
type SubscriptionHandler struct {
	createUC          *usecases.CreateSubscriptionUseCase
	activateUC        *usecases.ActivateSubscriptionUseCase
	cancelUC          *usecases.CancelSubscriptionUseCase
	stopUC            *usecases.StopSubscriptionUseCase
	deactivateUC      *usecases.DeactivateSubscriptionUseCase
	endUC             *usecases.EndSubscriptionUseCase
	getUC             *usecases.GetSubscriptionUseCase
	listUC            *usecases.ListSubscriptionsUseCase
	listEventsUC      *usecases.ListEventsUseCase
	listTransitionsUC *usecases.ListPossibleTransitionsUseCase
	recordDocumentUC  *usecases.RecordDocumentGeneratedUseCase
	logger            logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	activateUC *usecases.ActivateSubscriptionUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	stopUC *usecases.StopSubscriptionUseCase,
	deactivateUC *usecases.DeactivateSubscriptionUseCase,
	endUC *usecases.EndSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	listUC *usecases.ListSubscriptionsUseCase,
	listEventsUC *usecases.ListEventsUseCase,
	listTransitionsUC *usecases.ListPossibleTransitionsUseCase,
	recordDocumentUC *usecases.RecordDocumentGeneratedUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:          createUC,
		activateUC:        activateUC,
		cancelUC:          cancelUC,
		stopUC:            stopUC,
		deactivateUC:      deactivateUC,
		endUC:             endUC,
		getUC:             getUC,
		listUC:            listUC,
		listEventsUC:      listEventsUC,
		listTransitionsUC: listTransitionsUC,
		recordDocumentUC:  recordDocumentUC,
		logger:            logger.NewLogger(),
	}
}

// metadata builds the caller identity carried into every use case. The
// x-actor header is mandatory on all subscription endpoints.
func metadata(c *gin.Context) (shared.Metadata, bool) {
	actor := c.GetHeader("x-actor")
	if actor == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "header x-actor is required")
		return shared.Metadata{}, false
	}
	return shared.Metadata{
		RequestID: middleware.GetRequestID(c),
		Actor:     actor,
	}, true
}

type CreateSubscriptionRequest struct {
	ID                    *string   `json:"id"`
	ContactID             string    `json:"contactId" binding:"required"`
	CarReservationToken   string    `json:"carReservationToken" binding:"required"`
	Type                  string    `json:"type" binding:"required,oneof=B2C B2B MINIB2B"`
	Term                  int       `json:"term" binding:"min=0"`
	SigningDate           time.Time `json:"signingDate" binding:"required"`
	TermType              string    `json:"termType" binding:"required,oneof=FIXED OPEN_ENDED"`
	Deposit               int64     `json:"deposit" binding:"min=0"`
	Amount                int64     `json:"amount" binding:"min=0"`
	MileagePackage        int       `json:"mileagePackage" binding:"min=0"`
	MileagePackageFee     int64     `json:"mileagePackageFee" binding:"min=0"`
	AdditionalMileageFee  int64     `json:"additionalMileageFee" binding:"min=0"`
	HandoverFirstName     string    `json:"handoverFirstName" binding:"required"`
	HandoverLastName      string    `json:"handoverLastName" binding:"required"`
	HandoverHouseNumber   string    `json:"handoverHouseNumber" binding:"required"`
	HandoverStreet        string    `json:"handoverStreet" binding:"required"`
	HandoverCity          string    `json:"handoverCity" binding:"required"`
	HandoverZip           string    `json:"handoverZip" binding:"required"`
	HandoverAddressExtra  *string   `json:"handoverAddressExtra"`
	PreferredHandoverDate time.Time `json:"preferredHandoverDate" binding:"required"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create subscription request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "missing/invalid properties")
		return
	}

	attrs := subscription.CreateAttributes{
		ContactID:             req.ContactID,
		Type:                  subscription.Type(req.Type),
		Term:                  req.Term,
		SigningDate:           req.SigningDate,
		TermType:              subscription.TermType(req.TermType),
		Deposit:               req.Deposit,
		Amount:                req.Amount,
		MileagePackage:        req.MileagePackage,
		MileagePackageFee:     req.MileagePackageFee,
		AdditionalMileageFee:  req.AdditionalMileageFee,
		HandoverFirstName:     req.HandoverFirstName,
		HandoverLastName:      req.HandoverLastName,
		HandoverHouseNumber:   req.HandoverHouseNumber,
		HandoverStreet:        req.HandoverStreet,
		HandoverCity:          req.HandoverCity,
		HandoverZip:           req.HandoverZip,
		HandoverAddressExtra:  req.HandoverAddressExtra,
		PreferredHandoverDate: req.PreferredHandoverDate,
	}
	if req.ID != nil {
		attrs.ID = *req.ID
	}

	sub, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		Subscription:        attrs,
		CarReservationToken: req.CarReservationToken,
		Metadata:            md,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subdto.ToSubscriptionDTO(sub))
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	sub, err := h.getUC.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		SubscriptionID: c.Param("id"),
		Metadata:       md,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToSubscriptionDTO(sub))
}

type UpdateStateRequest struct {
	State             string  `json:"state" binding:"required,oneof=ACTIVE CANCELED STOPPED INACTIVE ENDED"`
	Note              *string `json:"note"`
	TerminationReason *string `json:"termination_reason"`
	TerminationDate   *string `json:"termination_date"`
}

// UpdateState dispatches to the lifecycle action matching the requested
// target state.
func (h *SubscriptionHandler) UpdateState(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid update state request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "missing/invalid properties")
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	var sub *subscription.Subscription
	var err error
	switch subscription.State(req.State) {
	case subscription.StateActive:
		sub, err = h.activateUC.Execute(ctx, usecases.ActivateSubscriptionCommand{
			SubscriptionID: id,
			Note:           req.Note,
			Metadata:       md,
		})
	case subscription.StateCanceled:
		reason, date, terr := terminationFields(req)
		if terr != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, terr.Error())
			return
		}
		sub, err = h.cancelUC.Execute(ctx, usecases.CancelSubscriptionCommand{
			SubscriptionID:    id,
			TerminationReason: reason,
			TerminationDate:   date,
			Note:              req.Note,
			Metadata:          md,
		})
	case subscription.StateStopped:
		reason, date, terr := terminationFields(req)
		if terr != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, terr.Error())
			return
		}
		sub, err = h.stopUC.Execute(ctx, usecases.StopSubscriptionCommand{
			SubscriptionID:    id,
			TerminationReason: reason,
			TerminationDate:   date,
			Note:              req.Note,
			Metadata:          md,
		})
	case subscription.StateInactive:
		sub, err = h.deactivateUC.Execute(ctx, usecases.DeactivateSubscriptionCommand{
			SubscriptionID: id,
			Note:           req.Note,
			Metadata:       md,
		})
	case subscription.StateEnded:
		sub, err = h.endUC.Execute(ctx, usecases.EndSubscriptionCommand{
			SubscriptionID: id,
			Note:           req.Note,
			Metadata:       md,
		})
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "not allowed state")
		return
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToSubscriptionDTO(sub))
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	count, offset, err := pagingParams(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	filters := subscription.ListFilters{
		CarID:          c.QueryArray("carId"),
		ContactID:      c.QueryArray("contactId"),
		SubscriptionID: c.QueryArray("subscriptionId"),
	}
	for _, s := range c.QueryArray("state") {
		state := subscription.State(s)
		if !state.Valid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid state filter: "+s)
			return
		}
		filters.State = append(filters.State, state)
	}
	for _, t := range c.QueryArray("type") {
		subType := subscription.Type(t)
		if !subType.Valid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid type filter: "+t)
			return
		}
		filters.Type = append(filters.Type, subType)
	}

	subs, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{
		Filters:  filters,
		Count:    count,
		Offset:   offset,
		Metadata: md,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToSubscriptionDTOList(subs))
}

func (h *SubscriptionHandler) ListEvents(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	count, _, err := pagingParams(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order := subscription.SortAscending
	if s := c.Query("sortOrder"); s != "" {
		order = subscription.SortOrder(s)
		if !order.Valid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid sort order: "+s)
			return
		}
	}

	filters := subscription.EventFilters{
		SubscriptionID: []string{c.Param("id")},
	}
	for _, n := range c.QueryArray("name") {
		name := subscription.EventName(n)
		if !name.Valid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid event name filter: "+n)
			return
		}
		filters.Name = append(filters.Name, name)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filters.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filters.To = &t
	}

	events, err := h.listEventsUC.Execute(c.Request.Context(), usecases.ListEventsQuery{
		Filters:  filters,
		Count:    count,
		Order:    order,
		Metadata: md,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToEventDTOList(events))
}

func (h *SubscriptionHandler) ListPossibleStateTransitions(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	states, err := h.listTransitionsUC.Execute(c.Request.Context(), usecases.ListPossibleTransitionsQuery{
		SubscriptionID: c.Param("id"),
		Metadata:       md,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToStateStrings(states))
}

type RecordDocumentRequest struct {
	EventName string  `json:"eventName" binding:"required"`
	Note      *string `json:"note"`
}

func (h *SubscriptionHandler) RecordDocumentGenerated(c *gin.Context) {
	md, ok := metadata(c)
	if !ok {
		return
	}

	var req RecordDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid record document request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "missing/invalid properties")
		return
	}

	event, err := h.recordDocumentUC.Execute(c.Request.Context(), usecases.RecordDocumentGeneratedCommand{
		SubscriptionID: c.Param("id"),
		EventName:      subscription.EventName(req.EventName),
		Note:           req.Note,
		Metadata:       md,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subdto.ToEventDTO(event))
}

func terminationFields(req UpdateStateRequest) (string, time.Time, error) {
	if req.TerminationReason == nil || req.TerminationDate == nil {
		return "", time.Time{}, errMissingTermination
	}
	date, err := time.Parse(time.RFC3339, *req.TerminationDate)
	if err != nil {
		return "", time.Time{}, errInvalidTerminationDate
	}
	return *req.TerminationReason, date, nil
}

func pagingParams(c *gin.Context) (count, offset int, err error) {
	count = subscription.DefaultListCount
	offset = subscription.DefaultListOffset
	if v := c.Query("count"); v != "" {
		count, err = strconv.Atoi(v)
		if err != nil || count <= 0 {
			return 0, 0, errInvalidCount
		}
	}
	if v := c.Query("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errInvalidOffset
		}
	}
	return count, offset, nil
}
