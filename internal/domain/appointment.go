package domain

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// AppointmentStatuses lista los estados reconocidos, en el orden del filtro.
var AppointmentStatuses = []string{AppointmentScheduled, AppointmentCompleted, AppointmentCancelled}

// Person es la proyección mínima de paciente o médico anidada en otros registros.
type Person struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Specialty *Specialty `json:"Specialty,omitempty"`
}

// FullName devuelve "Nombre Apellido" o un guion si no hay datos.
func (p *Person) FullName() string {
	if p == nil {
		return "—"
	}
	return p.FirstName + " " + p.LastName
}

type Appointment struct {
	ID      int64     `json:"id"`
	Date    Timestamp `json:"appointment_date"`
	Status  string    `json:"status"`
	Patient *Person   `json:"Patient,omitempty"`
	Doctor  *Person   `json:"Doctor,omitempty"`
}

// SpecialtyName devuelve la especialidad del médico de la cita o un guion.
func (a Appointment) SpecialtyName() string {
	if a.Doctor == nil || a.Doctor.Specialty == nil || a.Doctor.Specialty.Name == "" {
		return "—"
	}
	return a.Doctor.Specialty.Name
}

// IsAppointmentStatus indica si status es un estado de cita reconocido.
func IsAppointmentStatus(status string) bool {
	for _, s := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
