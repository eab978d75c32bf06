package push

import "fmt"

// Notification is the JSON payload the service worker receives. title and
// body are shown to the user; the remaining fields let the page refresh the
// affected appointment.
type Notification struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Doctor  string `json:"medico"`
	Patient string `json:"paciente"`
	Date    string `json:"fecha"`
	Time    string `json:"hora"`
}

func NewAppointmentUpdated(patientName, doctorName, date, time string) *Notification {
	return &Notification{
		Title: "Cita actualizada",
		Body: fmt.Sprintf("Hola %s, tu cita con el Dr. %s ha sido actualizada a %s a las %s.",
			patientName, doctorName, date, time),
		Doctor:  doctorName,
		Patient: patientName,
		Date:    date,
		Time:    time,
	}
}
