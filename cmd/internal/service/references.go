package service

import (
	"agenda/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// missingReference reports which side of a rejected patient/doctor reference
// does not exist. The patient is checked first.
func missingReference(patients PatientRepository, doctors DoctorRepository, patientID, doctorID int) apierror.ErrorResponse {
	patient, err := patients.FindByID(patientID)
	if err != nil {
		log.Errorf("failed to fetch patient %d: %v", patientID, err)
		return apierror.InternalServerError
	}
	if patient == nil {
		return apierror.PatientNotFoundError
	}

	doctor, err := doctors.FindByID(doctorID)
	if err != nil {
		log.Errorf("failed to fetch doctor %d: %v", doctorID, err)
		return apierror.InternalServerError
	}
	if doctor == nil {
		return apierror.DoctorNotFoundError
	}

	log.Errorf("reference to patient %d and doctor %d rejected although both exist", patientID, doctorID)
	return apierror.InternalServerError
}
