package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/mariana/linguaflash/internal/services"
	"github.com/mariana/linguaflash/internal/worker"
)

// Server wires services into HTTP handlers.
type Server struct {
	CardService      services.CardService
	PracticeService  services.PracticeService
	ProvisionService services.ProvisionService
	ImportService    services.ImportService
	ProvisionPool    *worker.Pool

	validate *validator.Validate
}

// NewServer creates a Server with request validation ready.
func NewServer(cardSvc services.CardService, practiceSvc services.PracticeService, provisionSvc services.ProvisionService, importSvc services.ImportService, pool *worker.Pool) *Server {
	return &Server{
		CardService:      cardSvc,
		PracticeService:  practiceSvc,
		ProvisionService: provisionSvc,
		ImportService:    importSvc,
		ProvisionPool:    pool,
		validate:         validator.New(),
	}
}
