package services

import (
	"daassist-web/apiclient"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrNotAuthorized = errors.New("not authenticated")
)

// Localized messages shown when the backend gives no detail
const (
	MsgRequiredFields   = "Compila tutti i campi obbligatori"
	MsgLoadFailed       = "Errore nel caricamento dei dati"
	MsgInvalidLogin     = "Credenziali non valide"
	MsgTicketCreate     = "Errore nella creazione del ticket"
	MsgInterventoCreate = "Errore nella creazione dell'intervento"
	MsgStateUpdate      = "Errore nell'aggiornamento dello stato"
	MsgTicketClose      = "Errore nella chiusura del ticket"
	MsgTicketAssign     = "Errore nell'assegnazione del tecnico"
	MsgTicketTake       = "Errore nella presa in carico del ticket"
	MsgScheduleRequest  = "Errore nella creazione della richiesta intervento"
	MsgTicketDelete     = "Errore nell'eliminazione del ticket"
	MsgNoteAdd          = "Errore nell'aggiunta della nota"
	MsgMessageAdd       = "Errore nell'invio del messaggio"
	MsgInterventoStart  = "Errore nell'avvio dell'intervento"
	MsgInterventoEnd    = "Errore nel completamento dell'intervento"
	MsgInterventoDelete = "Errore nell'eliminazione dell'intervento"
	MsgSessionSave      = "Errore nel salvataggio della sessione"
	MsgSessionDelete    = "Errore nell'eliminazione della sessione"
	MsgRowUpdate        = "Errore nell'aggiornamento della riga"
	MsgRowDelete        = "Errore nell'eliminazione della riga"
	MsgActivityAdd      = "Errore nell'aggiunta dell'attività"
	MsgTechniciansLoad  = "Errore nel caricamento dei tecnici"
	MsgTechnicianSave   = "Errore nel salvataggio del tecnico"
	MsgTechnicianToggle = "Errore nel cambio stato del tecnico"
	MsgTechnicianDelete = "Errore nell'eliminazione del tecnico"
)

// ValidationError is a rejected input, with the fields that failed
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// newValidationError collects the failing field names of a validator error
func newValidationError(err error, message string) *ValidationError {
	verr := &ValidationError{Message: message}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			verr.Fields = append(verr.Fields, fe.Field())
		}
	}
	return verr
}

// notFound turns a backend 404 into ErrNotFound
func notFound(err error, what string, id int64) error {
	if apiclient.IsNotFound(err) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %d: %w", what, id, err)
}

// UserMessage is the text shown for err: the backend detail when present,
// otherwise fallback
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return apiclient.DetailOr(err, fallback)
}
