package models

// Filters encoded into backend query strings. Every field is optional:
// nil pointers and empty strings are left out of the request.

// ClienteFilters filters GET /clients
type ClienteFilters struct {
	Page   int    `url:"page,omitempty"`
	Limit  int    `url:"limit,omitempty"`
	Search string `url:"search,omitempty"`
	Attivo *bool  `url:"attivo,omitempty"`
}

// TicketFilters filters GET /tickets
type TicketFilters struct {
	Page               int    `url:"page,omitempty"`
	Limit              int    `url:"limit,omitempty"`
	StatoID            *int64 `url:"stato_id,omitempty"`
	PrioritaID         *int64 `url:"priorita_id,omitempty"`
	TecnicoID          *int64 `url:"tecnico_id,omitempty"`
	TecnicoAssegnatoID *int64 `url:"tecnico_assegnato_id,omitempty"`
	ClienteID          *int64 `url:"cliente_id,omitempty"`
	Search             string `url:"search,omitempty"`
}

// InterventoFilters filters GET /interventions
type InterventoFilters struct {
	Page             int    `url:"page,omitempty"`
	Limit            int    `url:"limit,omitempty"`
	StatoID          *int64 `url:"stato_id,omitempty"`
	TipoInterventoID *int64 `url:"tipo_intervento_id,omitempty"`
	TecnicoID        *int64 `url:"tecnico_id,omitempty"`
	ClienteID        *int64 `url:"cliente_id,omitempty"`
	TicketID         *int64 `url:"ticket_id,omitempty"`
	DataFrom         string `url:"data_from,omitempty"`
	DataTo           string `url:"data_to,omitempty"`
	Search           string `url:"search,omitempty"`
}

// TechnicianFilters filters GET /technicians
type TechnicianFilters struct {
	Page      int    `url:"page,omitempty"`
	Limit     int    `url:"limit,omitempty"`
	Search    string `url:"search,omitempty"`
	RepartoID *int64 `url:"reparto_id,omitempty"`
	RuoloID   *int64 `url:"ruolo_id,omitempty"`
	Attivo    *bool  `url:"attivo,omitempty"`
}

// ContattiFilters narrows GET /clients/{id}/contacts to one site
type ContattiFilters struct {
	SedeID *int64 `url:"sede_id,omitempty"`
}
