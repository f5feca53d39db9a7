package domain

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Periods lista los periodos reconocidos por la analítica de citas.
var Periods = []string{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// DefaultPeriod es el periodo con el que abre la página de estadísticas.
const DefaultPeriod = PeriodMonth

func IsPeriod(p string) bool {
	for _, v := range Periods {
		if v == p {
			return true
		}
	}
	return false
}

type GeneralStats struct {
	TotalPatients        Number `json:"totalPatients"`
	TotalDoctors         Number `json:"totalDoctors"`
	TotalAppointments    Number `json:"totalAppointments"`
	TotalSpecialties     Number `json:"totalSpecialties"`
	UpcomingAppointments Number `json:"upcomingAppointments"`
	PendingReviews       Number `json:"pendingReviews"`
}

// AppointmentAnalyticsRow es una fila de la analítica; Label viene en la
// columna con el nombre del periodo pedido (day, week, month o year).
type AppointmentAnalyticsRow struct {
	Label     string
	Count     Number
	Completed Number
	Cancelled Number
}

type DoctorPerformance struct {
	ID                int64      `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Specialty         *Specialty `json:"Specialty,omitempty"`
	TotalAppointments Number     `json:"totalAppointments"`
	AvgRating         Number     `json:"avgRating"`
	ReviewsCount      Number     `json:"reviewsCount"`
}

type PopularSpecialty struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	DoctorsCount      Number `json:"doctorsCount"`
	AppointmentsCount Number `json:"appointmentsCount"`
}

// Dashboard agrupa las cuatro lecturas de la página de estadísticas.
// Sólo se construye cuando las cuatro tuvieron éxito.
type Dashboard struct {
	Period       string
	General      GeneralStats
	Appointments []AppointmentAnalyticsRow
	Doctors      []DoctorPerformance
	Specialties  []PopularSpecialty
}
