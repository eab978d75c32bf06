package repository

import (
	"agenda/cmd/internal/domain/entity"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemorySubscriptionRepository keeps subscriptions for the lifetime of the
// process only.
type MemorySubscriptionRepository struct {
	mu   sync.RWMutex
	subs map[int]entity.PushSubscription
}

func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{subs: make(map[int]entity.PushSubscription)}
}

func (m *MemorySubscriptionRepository) Get(patientID int) (*entity.PushSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subs[patientID]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (m *MemorySubscriptionRepository) Set(sub *entity.PushSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[sub.PatientID] = *sub
	return nil
}

func (m *MemorySubscriptionRepository) Delete(patientID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, patientID)
	return nil
}

// DefaultSubscriptionRepository persists subscriptions in the suscripciones table.
type DefaultSubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *DefaultSubscriptionRepository {
	return &DefaultSubscriptionRepository{db: db}
}

func (s *DefaultSubscriptionRepository) Get(patientID int) (*entity.PushSubscription, error) {
	var sub entity.PushSubscription
	err := s.db.First(&sub, "paciente_id = ?", patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

func (s *DefaultSubscriptionRepository) Set(sub *entity.PushSubscription) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "paciente_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "p256dh", "auth"}),
	}).Create(sub).Error
}

func (s *DefaultSubscriptionRepository) Delete(patientID int) error {
	return s.db.Delete(&entity.PushSubscription{}, "paciente_id = ?", patientID).Error
}
