package models

// DashboardData is GET /dashboard
type DashboardData struct {
	TicketStats     TicketStats      `json:"ticket_stats"`
	InterventoStats InterventoStats  `json:"intervento_stats"`
	RecentTickets   []RecentTicket   `json:"recent_tickets"`
	InterventiOggi  []InterventoOggi `json:"interventi_oggi"`
}

// TicketStats are the ticket counters
type TicketStats struct {
	Totali          int `json:"totali"`
	Aperti          int `json:"aperti"`
	Nuovi           int `json:"nuovi"`
	InLavorazione   int `json:"in_lavorazione"`
	ChiusiOggi      int `json:"chiusi_oggi"`
	ChiusiSettimana int `json:"chiusi_settimana"`
	ChiusiMese      int `json:"chiusi_mese"`
}

// InterventoStats are the intervention counters
type InterventoStats struct {
	Totali              int `json:"totali"`
	Pianificati         int `json:"pianificati"`
	InCorso             int `json:"in_corso"`
	CompletatiOggi      int `json:"completati_oggi"`
	CompletatiSettimana int `json:"completati_settimana"`
	CompletatiMese      int `json:"completati_mese"`
}

// RecentTicket is a row of the dashboard recent tickets table
type RecentTicket struct {
	ID                    int64   `json:"id"`
	Numero                string  `json:"numero"`
	ClienteRagioneSociale *string `json:"cliente_ragione_sociale"`
	Oggetto               string  `json:"oggetto"`
	PrioritaCodice        string  `json:"priorita_codice"`
	PrioritaDescrizione   string  `json:"priorita_descrizione"`
	StatoCodice           string  `json:"stato_codice"`
	StatoDescrizione      string  `json:"stato_descrizione"`
	CreatedAt             string  `json:"created_at"`
}

// InterventoOggi is an intervention scheduled for today
type InterventoOggi struct {
	ID                    int64   `json:"id"`
	Numero                string  `json:"numero"`
	ClienteRagioneSociale string  `json:"cliente_ragione_sociale"`
	Oggetto               string  `json:"oggetto"`
	TipoDescrizione       string  `json:"tipo_descrizione"`
	TipoRichiedeViaggio   bool    `json:"tipo_richiede_viaggio"`
	StatoCodice           string  `json:"stato_codice"`
	StatoDescrizione      string  `json:"stato_descrizione"`
	DataInizio            *string `json:"data_inizio"`
}
