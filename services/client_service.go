package services

import (
	"context"
	"daassist-web/models"
	"daassist-web/utils"
	"daassist-web/utils/logger"
	"daassist-web/utils/palette"
	"time"

	"golang.org/x/sync/errgroup"
)

// Client detail tabs
const (
	ClientTabInfo      = "info"
	ClientTabSedi      = "sedi"
	ClientTabContatti  = "contatti"
	ClientTabContratti = "contratti"
)

type ClientService struct {
	backend *Backend
	logger  logger.Logger
}

func NewClientService(backend *Backend, log logger.Logger) *ClientService {
	return &ClientService{backend: backend, logger: log}
}

// List loads one page of clients
func (s *ClientService) List(ctx context.Context, q ListQuery[models.ClienteFilters]) (*models.ClientListView, error) {
	page, err := loadQuery(ctx, DefaultPageLimit, q, s.fetch)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ClientRow, 0, len(page.Items))
	for _, c := range page.Items {
		rows = append(rows, clientRow(c))
	}

	filters := page.Filters
	filters.Page, filters.Limit, filters.Search = page.Page, page.Limit, page.Search
	return &models.ClientListView{
		Rows:       rows,
		Pagination: page.Pagination(),
		Filters:    filters,
	}, nil
}

func (s *ClientService) fetch(ctx context.Context, page, limit int, search string, f models.ClienteFilters) ([]models.Cliente, int, error) {
	f.Page, f.Limit, f.Search = page, limit, search
	resp, err := s.backend.Clients.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return resp.Clienti, resp.Total, nil
}

func clientRow(c models.Cliente) models.ClientRow {
	return models.ClientRow{
		Cliente:              c,
		StatoBadge:           palette.OptionalBadge(palette.ClientState, c.StatoCliente),
		ClassificazioneBadge: palette.OptionalBadge(palette.ClientClass, c.Classificazione),
	}
}

// Detail loads a client with sites, contacts and contracts in parallel
func (s *ClientService) Detail(ctx context.Context, id int64, tab string) (*models.ClientDetailView, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}

	var (
		cliente   *models.ClienteDetail
		sedi      []models.SedeCliente
		contatti  []models.Referente
		contratti []models.Contratto
		stats     *models.ClienteStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cliente, err = s.backend.Clients.Get(gctx, id)
		if err != nil {
			return notFound(err, "client", id)
		}
		return nil
	})
	g.Go(func() (err error) {
		sedi, err = s.backend.Clients.Sedi(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		contatti, err = s.backend.Clients.Contatti(gctx, id, models.ContattiFilters{})
		return err
	})
	g.Go(func() (err error) {
		contratti, err = s.backend.Clients.Contratti(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		if stats, err = s.backend.Clients.Stats(gctx, id); err != nil {
			s.logger.Warnf("Client %d stats unavailable: %v", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.ClientDetailView{
		Cliente:              *cliente,
		Tab:                  clientTab(tab),
		Sedi:                 nonNil(sedi),
		Contatti:             nonNil(contatti),
		Contratti:            nonNil(contratti),
		ActiveContract:       models.ActiveContract(contratti, time.Now()),
		OrariServizio:        utils.ParseOrariServizio(cliente.OrariServizio),
		StatoBadge:           palette.OptionalBadge(palette.ClientState, cliente.StatoCliente),
		ClassificazioneBadge: palette.OptionalBadge(palette.ClientClass, cliente.Classificazione),
		Stats:                stats,
	}, nil
}

func clientTab(tab string) string {
	switch tab {
	case ClientTabSedi, ClientTabContatti, ClientTabContratti:
		return tab
	}
	return ClientTabInfo
}

// nonNil keeps empty lists as [] in JSON
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
