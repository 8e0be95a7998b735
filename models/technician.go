package models

// Technician is a staff member managed from the technicians page
type Technician struct {
	ID                int64       `json:"id"`
	Username          string      `json:"username"`
	Email             string      `json:"email"`
	Nome              string      `json:"nome"`
	Cognome           string      `json:"cognome"`
	Telefono          *string     `json:"telefono,omitempty"`
	Cellulare         *string     `json:"cellulare,omitempty"`
	InternoTelefonico *string     `json:"interno_telefonico,omitempty"`
	TelegramID        *string     `json:"telegram_id,omitempty"`
	RepartoID         *int64      `json:"reparto_id,omitempty"`
	Reparto           *Department `json:"reparto,omitempty"`
	RuoloID           int64       `json:"ruolo_id"`
	Ruolo             *UserRole   `json:"ruolo,omitempty"`
	CodiceTecnico     *string     `json:"codice_tecnico,omitempty"`
	LdapDN            *string     `json:"ldap_dn,omitempty"`
	LdapEnabled       bool        `json:"ldap_enabled"`
	UsernameAD        *string     `json:"username_ad,omitempty"`
	ColoreCalendario  string      `json:"colore_calendario"`
	NotificheEmail    bool        `json:"notifiche_email"`
	NotifichePush     bool        `json:"notifiche_push"`
	Note              *string     `json:"note,omitempty"`
	UltimoLogin       *string     `json:"ultimo_login,omitempty"`
	Attivo            bool        `json:"attivo"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
}

// FullName joins first and last name
func (t *Technician) FullName() string {
	return joinName(t.Nome, t.Cognome)
}

// TechnicianListResponse is GET /technicians
type TechnicianListResponse struct {
	Items []Technician `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// TechnicianCreate is the body of POST /technicians
type TechnicianCreate struct {
	Username          string  `json:"username" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	Password          string  `json:"password" validate:"required,min=6"`
	Nome              string  `json:"nome" validate:"required"`
	Cognome           string  `json:"cognome" validate:"required"`
	Telefono          *string `json:"telefono,omitempty"`
	Cellulare         *string `json:"cellulare,omitempty"`
	InternoTelefonico *string `json:"interno_telefonico,omitempty"`
	TelegramID        *string `json:"telegram_id,omitempty"`
	RepartoID         *int64  `json:"reparto_id,omitempty"`
	RuoloID           int64   `json:"ruolo_id" validate:"required"`
	CodiceTecnico     *string `json:"codice_tecnico,omitempty"`
	LdapEnabled       bool    `json:"ldap_enabled"`
	UsernameAD        *string `json:"username_ad,omitempty"`
	ColoreCalendario  string  `json:"colore_calendario"`
	NotificheEmail    bool    `json:"notifiche_email"`
	NotifichePush     bool    `json:"notifiche_push"`
	Note              *string `json:"note,omitempty"`
}

// TechnicianUpdate is the body of PUT /technicians/{id}
type TechnicianUpdate struct {
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	Password          *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Nome              *string `json:"nome,omitempty"`
	Cognome           *string `json:"cognome,omitempty"`
	Telefono          *string `json:"telefono,omitempty"`
	Cellulare         *string `json:"cellulare,omitempty"`
	InternoTelefonico *string `json:"interno_telefonico,omitempty"`
	TelegramID        *string `json:"telegram_id,omitempty"`
	RepartoID         *int64  `json:"reparto_id,omitempty"`
	RuoloID           *int64  `json:"ruolo_id,omitempty"`
	CodiceTecnico     *string `json:"codice_tecnico,omitempty"`
	LdapEnabled       *bool   `json:"ldap_enabled,omitempty"`
	UsernameAD        *string `json:"username_ad,omitempty"`
	ColoreCalendario  *string `json:"colore_calendario,omitempty"`
	NotificheEmail    *bool   `json:"notifiche_email,omitempty"`
	NotifichePush     *bool   `json:"notifiche_push,omitempty"`
	Note              *string `json:"note,omitempty"`
	Attivo            *bool   `json:"attivo,omitempty"`
}

// Defaults for a new technician
const (
	DefaultTechnicianRole = "TECNICO"
	DefaultCalendarColor  = "#3B82F6"
)
