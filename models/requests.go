package models

// Bodies of the BFF endpoints that do not map one to one on a backend payload

// StateChange moves a ticket or an intervention to another state
type StateChange struct {
	StatoID int64 `json:"stato_id" validate:"required,gt=0"`
}

// TechnicianSelection sets or clears (null) the assigned technician
type TechnicianSelection struct {
	TecnicoID *int64 `json:"tecnico_id"`
}

// ClientSelection is the client picked in a create form, 0 clears it
type ClientSelection struct {
	ClienteID int64 `json:"cliente_id" validate:"min=0"`
}
