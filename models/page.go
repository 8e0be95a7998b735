package models

// View models returned to the browser. They carry fetched records plus the
// display values derived from them.

// Badge is a status chip: the code, its label and the palette class
type Badge struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Class string `json:"class"`
}

// Pagination describes the page shown by a list view
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewPagination computes the page counters for a list
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// NotFoundView replaces a detail page whose record does not exist
type NotFoundView struct {
	Message  string `json:"message"`
	BackHref string `json:"back_href"`
}

// NavItem is an entry of the main navigation
type NavItem struct {
	Name   string `json:"name"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// LayoutView is the application shell
type LayoutView struct {
	AppName    string    `json:"app_name"`
	Navigation []NavItem `json:"navigation"`
	User       *User     `json:"user"`
	UserName   string    `json:"user_name"`
}

// Clients

type ClientRow struct {
	Cliente
	StatoBadge           *Badge `json:"stato_badge,omitempty"`
	ClassificazioneBadge *Badge `json:"classificazione_badge,omitempty"`
}

type ClientListView struct {
	Rows       []ClientRow    `json:"rows"`
	Pagination Pagination     `json:"pagination"`
	Filters    ClienteFilters `json:"filters"`
}

type ClientDetailView struct {
	Cliente              ClienteDetail          `json:"cliente"`
	Tab                  string                 `json:"tab"`
	Sedi                 []SedeCliente          `json:"sedi"`
	Contatti             []Referente            `json:"contatti"`
	Contratti            []Contratto            `json:"contratti"`
	ActiveContract       *Contratto             `json:"active_contract"`
	OrariServizio        map[string]interface{} `json:"orari_servizio"`
	StatoBadge           *Badge                 `json:"stato_badge,omitempty"`
	ClassificazioneBadge *Badge                 `json:"classificazione_badge,omitempty"`
	Stats                *ClienteStats          `json:"stats,omitempty"`
}

// Tickets

type TicketRow struct {
	Ticket
	PrioritaBadge Badge `json:"priorita_badge"`
	StatoBadge    Badge `json:"stato_badge"`
}

type TicketListView struct {
	Rows       []TicketRow   `json:"rows"`
	Pagination Pagination    `json:"pagination"`
	Filters    TicketFilters `json:"filters"`
}

type TicketFilterOptions struct {
	Stati    []State    `json:"stati"`
	Priorita []Priority `json:"priorita"`
	Clienti  []Cliente  `json:"clienti"`
	Tecnici  []Tecnico  `json:"tecnici"`
}

type TicketDetailView struct {
	Ticket         Ticket            `json:"ticket"`
	PrioritaBadge  Badge             `json:"priorita_badge"`
	StatoBadge     Badge             `json:"stato_badge"`
	Stati          []State           `json:"stati"`
	Contratti      []Contratto       `json:"contratti"`
	Referenti      []Referente       `json:"referenti"`
	ActiveContract *Contratto        `json:"active_contract"`
	Tecnici        []Tecnico         `json:"tecnici"`
	Interventi     []InterventionRow `json:"interventi"`
	CloseTypes     []string          `json:"close_types"`
}

// Interventions

type InterventionRow struct {
	Intervento
	StatoBadge  Badge  `json:"stato_badge"`
	TipoBadge   Badge  `json:"tipo_badge"`
	TravelBadge Badge  `json:"travel_badge"`
	Durata      string `json:"durata"`
}

type InterventionListView struct {
	Rows       []InterventionRow `json:"rows"`
	Pagination Pagination        `json:"pagination"`
	Filters    InterventoFilters `json:"filters"`
}

type InterventionFilterOptions struct {
	Stati   []State   `json:"stati"`
	Clienti []Cliente `json:"clienti"`
	Tecnici []Tecnico `json:"tecnici"`
}

type InterventionDetailView struct {
	Intervento     Intervento    `json:"intervento"`
	Tab            string        `json:"tab"`
	StatoBadge     Badge         `json:"stato_badge"`
	TipoBadge      Badge         `json:"tipo_badge"`
	TravelBadge    Badge         `json:"travel_badge"`
	Stati          []State       `json:"stati"`
	Contratti      []Contratto   `json:"contratti"`
	ActiveContract *Contratto    `json:"active_contract"`
	Sessions       *SessionsView `json:"sessions,omitempty"`
	Rows           *RowsView     `json:"rows,omitempty"`
}

type SessionRow struct {
	SessioneLavoro
	Durata string `json:"durata"`
}

type SessionsView struct {
	Sessions      []SessionRow       `json:"sessions"`
	Types         []InterventionType `json:"types"`
	TotalMinutes  int                `json:"total_minutes"`
	TotalDuration string             `json:"total_duration"`
}

type RowLine struct {
	RigaAttivita
	ImportoFormatted string `json:"importo_formatted"`
}

type RowsView struct {
	Rows           []RowLine `json:"rows"`
	Total          float64   `json:"total"`
	TotalFormatted string    `json:"total_formatted"`
}

// ActivityDraftView is the form for a new activity of the rows tab
type ActivityDraftView struct {
	Fields    AttivitaCreate     `json:"fields"`
	Categorie []ActivityCategory `json:"categorie"`
}

type RowPreview struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// Technicians

type TechnicianRow struct {
	Technician
	NomeCompleto string `json:"nome_completo"`
}

type TechnicianListView struct {
	Rows       []TechnicianRow   `json:"rows"`
	Pagination Pagination        `json:"pagination"`
	Filters    TechnicianFilters `json:"filters"`
	Reparti    []Department      `json:"reparti"`
	Ruoli      []UserRole        `json:"ruoli"`
}

// Dashboard

type StatCard struct {
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Detail string `json:"detail"`
	Href   string `json:"href"`
}

type RecentTicketRow struct {
	RecentTicket
	PrioritaBadge Badge `json:"priorita_badge"`
	StatoBadge    Badge `json:"stato_badge"`
}

type InterventoOggiRow struct {
	InterventoOggi
	StatoBadge  Badge `json:"stato_badge"`
	TravelBadge Badge `json:"travel_badge"`
}

type DashboardView struct {
	Cards          []StatCard          `json:"cards"`
	RecentTickets  []RecentTicketRow   `json:"recent_tickets"`
	InterventiOggi []InterventoOggiRow `json:"interventi_oggi"`
}

// Calendar

type CalendarEntry struct {
	ID         int64  `json:"id"`
	Numero     string `json:"numero"`
	Oggetto    string `json:"oggetto"`
	Cliente    string `json:"cliente"`
	Ora        string `json:"ora"`
	StatoBadge Badge  `json:"stato_badge"`
}

type CalendarCell struct {
	Date           string          `json:"date"`
	Day            int             `json:"day"`
	IsCurrentMonth bool            `json:"is_current_month"`
	IsToday        bool            `json:"is_today"`
	Interventions  []CalendarEntry `json:"interventions"`
}

type CalendarView struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	MonthName string         `json:"month_name"`
	Weekdays  []string       `json:"weekdays"`
	Cells     []CalendarCell `json:"cells"`
	RangeFrom string         `json:"range_from"`
	RangeTo   string         `json:"range_to"`
	Prev      MonthRef       `json:"prev"`
	Next      MonthRef       `json:"next"`
}

type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Create forms

type TicketFormView struct {
	Fields    TicketCreate `json:"fields"`
	Clienti   []Cliente    `json:"clienti"`
	Canali    []Channel    `json:"canali"`
	Priorita  []Priority   `json:"priorita"`
	Reparti   []Department `json:"reparti"`
	Referenti []Referente  `json:"referenti"`
	Contratti []Contratto  `json:"contratti"`
	Error     string       `json:"error,omitempty"`
}

type InterventionFormView struct {
	Fields  InterventoCreate     `json:"fields"`
	Clienti []Cliente            `json:"clienti"`
	Tipi    []InterventionType   `json:"tipi"`
	Stati   []State              `json:"stati"`
	Origini []InterventionOrigin `json:"origini"`
	Tickets []Ticket             `json:"tickets"`
	Error   string               `json:"error,omitempty"`
}

// FormResult is returned by a successful form submission
type FormResult struct {
	ID         int64  `json:"id"`
	Numero     string `json:"numero"`
	ReloadList bool   `json:"reload_list"`
}

// ScheduleView answers a scheduled intervention request with the reloaded ticket
type ScheduleView struct {
	Result ScheduleInterventionResult `json:"result"`
	Ticket *TicketDetailView          `json:"ticket"`
}
