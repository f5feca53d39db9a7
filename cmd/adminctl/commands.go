package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/service"
	"clinic-admin/internal/session"
)

const usage = `uso: adminctl <comando>

  login                      inicia sesión (pide email y contraseña)
  logout                     cierra la sesión guardada
  whoami                     muestra la sesión activa
  list <recurso> [filtro]    doctors | specialties | users | appointments | reviews
  stats [periodo]            day | week | month | year
  delete <recurso> <id>      pide confirmación antes de borrar
`

type cli struct {
	current      *session.Current
	doctors      *service.DoctorService
	specialties  *service.SpecialtyService
	users        *service.UserService
	appointments *service.AppointmentService
	reviews      *service.ReviewService
	stats        *service.StatisticsService
	in           *bufio.Reader
	out          io.Writer
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "login":
		err = c.login(ctx)
	case "logout":
		err = c.current.Logout(ctx)
		if err == nil {
			fmt.Fprintln(c.out, "Sesión cerrada.")
		}
	case "whoami":
		err = c.whoami()
	case "list":
		if len(args) < 2 {
			fmt.Fprint(c.out, usage)
			return 2
		}
		err = c.requireAdmin(func(actor domain.Session) error {
			return c.list(ctx, actor, args[1], optional(args, 2))
		})
	case "stats":
		err = c.requireAdmin(func(actor domain.Session) error {
			return c.statistics(ctx, actor, optional(args, 1))
		})
	case "delete":
		if len(args) < 3 {
			fmt.Fprint(c.out, usage)
			return 2
		}
		err = c.requireAdmin(func(actor domain.Session) error {
			return c.remove(ctx, actor, args[1], args[2])
		})
	default:
		fmt.Fprint(c.out, usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(c.out, "error: %s\n", describe(err))
		return 1
	}
	return 0
}

func (c *cli) login(ctx context.Context) error {
	if _, ok := c.current.Get(); ok {
		return errors.New("ya hay una sesión activa; usa logout primero")
	}
	email := c.prompt("Email: ")
	password := c.prompt("Contraseña: ")
	sess, err := c.current.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Bienvenido, %s.\n", sess.DisplayName())
	return nil
}

func (c *cli) whoami() error {
	sess, ok := c.current.Get()
	if !ok {
		fmt.Fprintln(c.out, "Sin sesión.")
		return nil
	}
	fmt.Fprintf(c.out, "%s <%s> (%s)\n", sess.DisplayName(), sess.Email, sess.Role)
	if exp, ok := session.TokenExpiry(sess.Token); ok {
		fmt.Fprintf(c.out, "El token caduca el %s\n", exp.Local().Format("02/01/2006 15:04"))
	}
	return nil
}

// requireAdmin aplica la misma regla que las rutas protegidas de la consola.
func (c *cli) requireAdmin(fn func(actor domain.Session) error) error {
	if !c.current.IsAdmin() {
		return errors.New("inicia sesión como administrador (adminctl login)")
	}
	sess, _ := c.current.Get()
	return fn(sess)
}

func (c *cli) list(ctx context.Context, actor domain.Session, resource, filter string) error {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch resource {
	case "doctors":
		list, err := c.doctors.List(ctx, actor)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tEXPERIENCIA\tESPECIALIDAD")
		for _, d := range list {
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%d\t%s\n", d.ID, d.FirstName, d.LastName, d.Email, d.Experience.Int(), d.SpecialtyName())
		}
	case "specialties":
		list, err := c.specialties.List(ctx, actor)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNOMBRE\tDESCRIPCIÓN")
		for _, sp := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\n", sp.ID, sp.Name, sp.Description)
		}
	case "users":
		list, err := c.users.List(ctx, actor)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL")
		for _, u := range list {
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.Role)
		}
	case "appointments":
		list, err := c.appointments.List(ctx, actor, filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tFECHA\tPACIENTE\tMÉDICO\tESTADO")
		for _, a := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Date.Display(), a.Patient.FullName(), a.Doctor.FullName(), a.Status)
		}
	case "reviews":
		list, err := c.reviews.List(ctx, actor, filter)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tVALORACIÓN\tESTADO\tCOMENTARIO")
		for _, r := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Rating.String(), r.Status, r.Comment)
		}
	default:
		return fmt.Errorf("recurso desconocido %q", resource)
	}
	return nil
}

func (c *cli) statistics(ctx context.Context, actor domain.Session, period string) error {
	dash, err := c.stats.Dashboard(ctx, actor, period)
	if err != nil {
		return err
	}
	g := dash.General
	fmt.Fprintf(c.out, "Pacientes: %s  Médicos: %s  Citas: %s  Especialidades: %s\n",
		g.TotalPatients, g.TotalDoctors, g.TotalAppointments, g.TotalSpecialties)
	fmt.Fprintf(c.out, "Próximas citas: %s  Reseñas pendientes: %s\n", g.UpcomingAppointments, g.PendingReviews)

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\tTOTAL\tCOMPLETADAS\tCANCELADAS\n", strings.ToUpper(dash.Period))
	for _, row := range dash.Appointments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Label, row.Count, row.Completed, row.Cancelled)
	}
	fmt.Fprintln(w, "\nMÉDICO\tCITAS\tVALORACIÓN\tRESEÑAS")
	for _, d := range dash.Doctors {
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", d.FirstName, d.LastName, d.TotalAppointments, d.AvgRating.Fixed2(), d.ReviewsCount)
	}
	fmt.Fprintln(w, "\nESPECIALIDAD\tMÉDICOS\tCITAS")
	for _, sp := range dash.Specialties {
		fmt.Fprintf(w, "%s\t%s\t%s\n", sp.Name, sp.DoctorsCount, sp.AppointmentsCount)
	}
	return w.Flush()
}

func (c *cli) remove(ctx context.Context, actor domain.Session, resource, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("id inválido %q", rawID)
	}

	var del func(context.Context, domain.Session, int64, bool) error
	switch resource {
	case "doctors":
		del = c.doctors.Delete
	case "specialties":
		del = c.specialties.Delete
	case "users":
		del = c.users.Delete
	case "appointments":
		del = c.appointments.Delete
	case "reviews":
		del = c.reviews.Delete
	default:
		return fmt.Errorf("recurso desconocido %q", resource)
	}

	answer := c.prompt(fmt.Sprintf("¿Eliminar %s #%d? [s/N]: ", resource, id))
	confirmed := strings.EqualFold(answer, "s") || strings.EqualFold(answer, "y")
	if err := del(ctx, actor, id, confirmed); err != nil {
		if errors.Is(err, service.ErrNotConfirmed) {
			fmt.Fprintln(c.out, "Cancelado.")
			return nil
		}
		return err
	}
	fmt.Fprintln(c.out, "Eliminado.")
	return nil
}

func (c *cli) prompt(label string) string {
	fmt.Fprint(c.out, label)
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func optional(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
