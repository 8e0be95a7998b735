package repository

import (
	"daassist-web/dal"
	"daassist-web/models"
	"daassist-web/utils/logger"
)

type Repository struct {
	Session *SessionRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Session: NewSessionRepository(db, cfg, log),
	}
}

func (r *Repository) GetSessionRepository() SessionRepositoryInterface {
	return r.Session
}
