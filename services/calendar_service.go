package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"daassist-web/utils/palette"
	"fmt"
	"time"
)

const (
	calendarCells = 42
	calendarLimit = 100
	isoMillis     = "2006-01-02T15:04:05.000Z07:00"
)

// Weekdays are the grid column headers, Monday first
var Weekdays = []string{"Lun", "Mar", "Mer", "Gio", "Ven", "Sab", "Dom"}

// MonthNames are the Italian month names, January first
var MonthNames = []string{
	"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
	"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
}

type CalendarService struct {
	backend  *Backend
	logger   logger.Logger
	location *time.Location
}

func NewCalendarService(backend *Backend, log logger.Logger) *CalendarService {
	return &CalendarService{backend: backend, logger: log, location: time.Local}
}

// GridRange returns the first and last day shown for a month: the Monday on
// or before the 1st and the 41st day after it
func GridRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, calendarCells-1)
}

// BuildGrid lays out the 42 cells of a month and places each intervention
// on the local date of its data_inizio. Interventions without a parseable
// start are left out.
func BuildGrid(year int, month time.Month, now time.Time, interventi []models.Intervento, loc *time.Location) []models.CalendarCell {
	if loc == nil {
		loc = time.Local
	}
	start, _ := GridRange(year, month, loc)
	today := now.In(loc).Format(time.DateOnly)

	cells := make([]models.CalendarCell, calendarCells)
	index := make(map[string]int, calendarCells)
	for i := range cells {
		day := start.AddDate(0, 0, i)
		date := day.Format(time.DateOnly)
		cells[i] = models.CalendarCell{
			Date:           date,
			Day:            day.Day(),
			IsCurrentMonth: day.Month() == month,
			IsToday:        date == today,
			Interventions:  []models.CalendarEntry{},
		}
		index[date] = i
	}

	for _, iv := range interventi {
		if iv.DataInizio == nil {
			continue
		}
		at, ok := models.ParseTimestamp(*iv.DataInizio, loc)
		if !ok {
			continue
		}
		i, ok := index[at.In(loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		cells[i].Interventions = append(cells[i].Interventions, calendarEntry(iv, at.In(loc)))
	}
	return cells
}

func calendarEntry(iv models.Intervento, at time.Time) models.CalendarEntry {
	entry := models.CalendarEntry{
		ID:      iv.ID,
		Numero:  iv.Numero,
		Oggetto: iv.Oggetto,
		Ora:     at.Format("15:04"),
	}
	if iv.Cliente != nil {
		entry.Cliente = iv.Cliente.RagioneSociale
	}
	label := ""
	if iv.Stato != nil {
		label = iv.Stato.Descrizione
	}
	entry.StatoBadge = palette.Badge(palette.CalendarState, iv.StatoCodice(), label)
	return entry
}

// Month loads the interventions of the whole visible grid and builds the
// calendar view. A zero year or month means the month of now.
func (s *CalendarService) Month(ctx context.Context, year, month int, now time.Time) (*models.CalendarView, error) {
	local := now.In(s.location)
	if year == 0 || month == 0 {
		year, month = local.Year(), int(local.Month())
	}
	if month < 1 || month > 12 {
		return nil, &ValidationError{Message: fmt.Sprintf("Mese non valido: %d", month), Fields: []string{"month"}}
	}

	start, last := GridRange(year, time.Month(month), s.location)
	end := last.Add(24*time.Hour - time.Second)

	filters := models.InterventoFilters{
		Limit:    calendarLimit,
		DataFrom: start.UTC().Format(isoMillis),
		DataTo:   end.UTC().Format(isoMillis),
	}
	resp, err := s.backend.Interventions.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar %04d-%02d: %w", year, month, err)
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.location)
	return &models.CalendarView{
		Year:      year,
		Month:     month,
		MonthName: MonthNames[month-1],
		Weekdays:  Weekdays,
		Cells:     BuildGrid(year, time.Month(month), now, resp.Interventi, s.location),
		RangeFrom: filters.DataFrom,
		RangeTo:   filters.DataTo,
		Prev:      monthRef(ref.AddDate(0, -1, 0)),
		Next:      monthRef(ref.AddDate(0, 1, 0)),
	}, nil
}

func monthRef(t time.Time) models.MonthRef {
	return models.MonthRef{Year: t.Year(), Month: int(t.Month())}
}
