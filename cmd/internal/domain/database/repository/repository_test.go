package repository

import (
	"agenda/cmd/internal/domain/database"
	"agenda/cmd/internal/domain/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedDoctor(t *testing.T, repo *DefaultDoctorRepository, name string) *entity.Doctor {
	t.Helper()
	doctor := &entity.Doctor{Name: name}
	require.NoError(t, repo.Save(doctor))
	return doctor
}

func seedPatient(t *testing.T, repo *DefaultPatientRepository, name string) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{Name: name}
	require.NoError(t, repo.Save(patient))
	return patient
}

// ----- doctors -----

func TestDoctorRepository_UniqueName(t *testing.T) {
	repo := NewDoctorRepository(setupDB(t))
	seedDoctor(t, repo, "House")

	found, err := repo.ExistsByName("House")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.ExistsByName("Wilson")
	require.NoError(t, err)
	assert.False(t, found)

	err = repo.Save(&entity.Doctor{Name: "House"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	doctors, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
}

func TestDoctorRepository_SetConnected(t *testing.T) {
	repo := NewDoctorRepository(setupDB(t))
	house := seedDoctor(t, repo, "House")
	wilson := seedDoctor(t, repo, "Wilson")

	require.NoError(t, repo.SetConnectedByID(house.ID, true))
	require.NoError(t, repo.SetConnectedByName("Wilson", true))

	got, err := repo.FindByID(house.ID)
	require.NoError(t, err)
	assert.True(t, got.Connected)

	got, err = repo.FindByID(wilson.ID)
	require.NoError(t, err)
	assert.True(t, got.Connected)

	require.NoError(t, repo.SetConnectedByID(house.ID, false))
	got, err = repo.FindByID(house.ID)
	require.NoError(t, err)
	assert.False(t, got.Connected)

	// Unknown identifiers are silently ignored.
	assert.NoError(t, repo.SetConnectedByID(999, true))
	assert.NoError(t, repo.SetConnectedByName("nobody", true))
}

func TestDoctorRepository_FindByIDMissing(t *testing.T) {
	repo := NewDoctorRepository(setupDB(t))

	got, err := repo.FindByID(42)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// ----- patients -----

func TestPatientRepository_FindAllOrderedByName(t *testing.T) {
	repo := NewPatientRepository(setupDB(t))
	seedPatient(t, repo, "Zoe")
	seedPatient(t, repo, "Ana")
	seedPatient(t, repo, "Marta")

	patients, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "Ana", patients[0].Name)
	assert.Equal(t, "Marta", patients[1].Name)
	assert.Equal(t, "Zoe", patients[2].Name)
}

func TestPatientRepository_FindByNameReturnsFirstDuplicate(t *testing.T) {
	repo := NewPatientRepository(setupDB(t))
	first := seedPatient(t, repo, "Ana")
	seedPatient(t, repo, "Ana")

	got, err := repo.FindByName("Ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	got, err = repo.FindByName("ana")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ----- appointments -----

type fixture struct {
	doctors  *DefaultDoctorRepository
	patients *DefaultPatientRepository
	appts    *DefaultAppointmentRepository
	history  *DefaultHistoryRepository
	doctor   *entity.Doctor
	patient  *entity.Patient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	f := &fixture{
		doctors:  NewDoctorRepository(db),
		patients: NewPatientRepository(db),
		appts:    NewAppointmentRepository(db),
		history:  NewHistoryRepository(db),
	}
	f.doctor = seedDoctor(t, f.doctors, "House")
	f.patient = seedPatient(t, f.patients, "Ana")
	return f
}

func (f *fixture) appointment(t *testing.T, date, time string) *entity.Appointment {
	t.Helper()
	appt := &entity.Appointment{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Date:      date,
		Time:      time,
		Available: true,
	}
	require.NoError(t, f.appts.Create(appt))
	return appt
}

func TestAppointmentRepository_FindAllDetails(t *testing.T) {
	f := newFixture(t)
	early := f.appointment(t, "2024-01-01", "09:00")
	late := f.appointment(t, "2024-01-02", "08:00")
	sameDayLater := f.appointment(t, "2024-01-01", "10:00")

	rows, err := f.appts.FindAllDetails()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, late.ID, rows[0].ID)
	assert.Equal(t, sameDayLater.ID, rows[1].ID)
	assert.Equal(t, early.ID, rows[2].ID)

	assert.Equal(t, "Ana", rows[0].PatientName)
	assert.Equal(t, "House", rows[0].DoctorName)
	assert.Equal(t, f.patient.ID, rows[0].PatientID)
	assert.Equal(t, f.doctor.ID, rows[0].DoctorID)
	assert.True(t, rows[0].Available)
}

func TestAppointmentRepository_CreateRequiresExistingPatient(t *testing.T) {
	f := newFixture(t)

	err := f.appts.Create(&entity.Appointment{
		PatientID: 999,
		DoctorID:  f.doctor.ID,
		Date:      "2024-01-01",
		Time:      "10:00",
		Available: true,
	})
	assert.Error(t, err)
}

func TestAppointmentRepository_SetAvailable(t *testing.T) {
	f := newFixture(t)
	appt := f.appointment(t, "2024-01-01", "10:00")

	require.NoError(t, f.appts.SetAvailable(appt.ID, false))
	got, err := f.appts.FindByID(appt.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)

	require.NoError(t, f.appts.SetAvailable(appt.ID, true))
	got, err = f.appts.FindByID(appt.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)

	assert.NoError(t, f.appts.SetAvailable(999, false))
}

func TestAppointmentRepository_Update(t *testing.T) {
	f := newFixture(t)
	other := seedDoctor(t, f.doctors, "Wilson")
	appt := f.appointment(t, "2024-01-01", "10:00")

	require.NoError(t, f.appts.Update(appt.ID, "2024-02-03", "11:30", f.patient.ID, other.ID))

	got, err := f.appts.FindDetailByID(appt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-02-03", got.Date)
	assert.Equal(t, "11:30", got.Time)
	assert.Equal(t, "Wilson", got.DoctorName)
	assert.True(t, got.Available)
}

func TestAppointmentRepository_Delete(t *testing.T) {
	f := newFixture(t)
	appt := f.appointment(t, "2024-01-01", "10:00")
	kept := f.appointment(t, "2024-01-01", "11:00")

	require.NoError(t, f.appts.Delete(appt.ID))
	assert.NoError(t, f.appts.Delete(appt.ID))

	rows, err := f.appts.FindAllDetails()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, kept.ID, rows[0].ID)

	got, err := f.appts.FindDetailByID(appt.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ----- history -----

func TestHistoryRepository_Ordering(t *testing.T) {
	f := newFixture(t)
	other := seedPatient(t, f.patients, "Luis")

	entries := []*entity.HistoryEntry{
		{PatientID: f.patient.ID, DoctorID: f.doctor.ID, Description: "old", Date: "2024-01-01"},
		{PatientID: f.patient.ID, DoctorID: f.doctor.ID, Description: "new-a", Date: "2024-03-01"},
		{PatientID: f.patient.ID, DoctorID: f.doctor.ID, Description: "new-b", Date: "2024-03-01"},
		{PatientID: other.ID, DoctorID: f.doctor.ID, Description: "not mine", Date: "2024-05-01"},
	}
	for _, e := range entries {
		require.NoError(t, f.history.Create(e))
	}

	rows, err := f.history.FindByPatientID(f.patient.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "new-b", rows[0].Description)
	assert.Equal(t, "new-a", rows[1].Description)
	assert.Equal(t, "old", rows[2].Description)
	assert.Equal(t, "Ana", rows[0].PatientName)
	assert.Equal(t, "House", rows[0].DoctorName)
}

// ----- subscriptions -----

func TestSubscriptionRepositories(t *testing.T) {
	stores := map[string]interface {
		Get(int) (*entity.PushSubscription, error)
		Set(*entity.PushSubscription) error
		Delete(int) error
	}{
		"memory":   NewMemorySubscriptionRepository(),
		"database": NewSubscriptionRepository(setupDB(t)),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			got, err := store.Get(1)
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, store.Set(&entity.PushSubscription{PatientID: 1, Endpoint: "https://push.example/a", P256dh: "k1", Auth: "a1"}))
			require.NoError(t, store.Set(&entity.PushSubscription{PatientID: 1, Endpoint: "https://push.example/b", P256dh: "k2", Auth: "a2"}))
			require.NoError(t, store.Set(&entity.PushSubscription{PatientID: 2, Endpoint: "https://push.example/c", P256dh: "k3", Auth: "a3"}))

			got, err = store.Get(1)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "https://push.example/b", got.Endpoint)
			assert.Equal(t, "k2", got.P256dh)
			assert.Equal(t, "a2", got.Auth)

			require.NoError(t, store.Delete(1))
			got, err = store.Get(1)
			require.NoError(t, err)
			assert.Nil(t, got)

			got, err = store.Get(2)
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}
