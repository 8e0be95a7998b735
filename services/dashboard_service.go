package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"daassist-web/utils/palette"
	"fmt"
)

type DashboardService struct {
	backend *Backend
	logger  logger.Logger
}

func NewDashboardService(backend *Backend, log logger.Logger) *DashboardService {
	return &DashboardService{backend: backend, logger: log}
}

// View builds the stat cards and the two dashboard tables
func (s *DashboardService) View(ctx context.Context) (*models.DashboardView, error) {
	data, err := s.backend.Dashboard.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats := data.TicketStats
	view := &models.DashboardView{
		Cards: []models.StatCard{
			{Name: "Ticket Aperti", Value: stats.Aperti, Detail: fmt.Sprintf("%d nuovi", stats.Nuovi), Href: "/tickets"},
			{Name: "In Lavorazione", Value: stats.InLavorazione, Detail: "In corso", Href: "/tickets"},
			{Name: "Completati Oggi", Value: stats.ChiusiOggi, Detail: "Chiusi", Href: "/tickets"},
			{Name: "Interventi Oggi", Value: len(data.InterventiOggi), Detail: fmt.Sprintf("%d pianificati", data.InterventoStats.Pianificati), Href: "/interventions"},
		},
		RecentTickets:  make([]models.RecentTicketRow, 0, len(data.RecentTickets)),
		InterventiOggi: make([]models.InterventoOggiRow, 0, len(data.InterventiOggi)),
	}

	for _, t := range data.RecentTickets {
		view.RecentTickets = append(view.RecentTickets, models.RecentTicketRow{
			RecentTicket:  t,
			PrioritaBadge: palette.Badge(palette.TicketPriority, t.PrioritaCodice, t.PrioritaDescrizione),
			StatoBadge:    palette.Badge(palette.TicketState, t.StatoCodice, t.StatoDescrizione),
		})
	}
	for _, i := range data.InterventiOggi {
		view.InterventiOggi = append(view.InterventiOggi, models.InterventoOggiRow{
			InterventoOggi: i,
			StatoBadge:     palette.Badge(palette.InterventionState, i.StatoCodice, i.StatoDescrizione),
			TravelBadge:    palette.TravelBadge(i.TipoRichiedeViaggio),
		})
	}
	return view, nil
}
