package service

import (
	"agenda/cmd/internal/domain/entity"
	"agenda/cmd/internal/utils"
	"agenda/cmd/internal/utils/apierror"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// SubscriptionRepository is the push-subscription registry. Get returns
// (nil, nil) when the patient has no subscription.
type SubscriptionRepository interface {
	Get(patientID int) (*entity.PushSubscription, error)
	Set(sub *entity.PushSubscription) error
	Delete(patientID int) error
}

type SubscriptionRequest struct {
	PatientID    utils.ID                `json:"pacienteId" validate:"required"`
	Subscription *SubscriptionDescriptor `json:"subscription" validate:"required"`
}

// SubscriptionDescriptor mirrors the browser's PushSubscription.toJSON().
type SubscriptionDescriptor struct {
	Endpoint       string           `json:"endpoint" validate:"required,pushendpoint"`
	ExpirationTime *float64         `json:"expirationTime"`
	Keys           SubscriptionKeys `json:"keys"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

type VapidResponse struct {
	Key string `json:"key"`
}

type DefaultSubscriptionService struct {
	SubscriptionRepo SubscriptionRepository
	Validate         *validator.Validate
	PublicKey        string
}

func NewSubscriptionService(subRepo SubscriptionRepository, validate *validator.Validate, publicKey string) *DefaultSubscriptionService {
	return &DefaultSubscriptionService{SubscriptionRepo: subRepo, Validate: validate, PublicKey: publicKey}
}

// Register stores the subscription, replacing any earlier one for the patient.
func (s *DefaultSubscriptionService) Register(req *SubscriptionRequest) apierror.ErrorResponse {
	if req.PatientID == 0 || req.Subscription == nil {
		return apierror.MissingDataError
	}

	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	sub := &entity.PushSubscription{
		PatientID: req.PatientID.Int(),
		Endpoint:  req.Subscription.Endpoint,
		P256dh:    req.Subscription.Keys.P256dh,
		Auth:      req.Subscription.Keys.Auth,
	}

	if err := s.SubscriptionRepo.Set(sub); err != nil {
		log.Errorf("failed to save push subscription for patient %d: %v", sub.PatientID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultSubscriptionService) Unregister(rawPatientId string) apierror.ErrorResponse {
	patientID, err := strconv.Atoi(rawPatientId)
	if err != nil {
		return apierror.NewInvalidParamTypeError("pacienteId", "int")
	}

	if err := s.SubscriptionRepo.Delete(patientID); err != nil {
		log.Errorf("failed to delete push subscription for patient %d: %v", patientID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultSubscriptionService) VapidPublicKey() *VapidResponse {
	return &VapidResponse{Key: s.PublicKey}
}
