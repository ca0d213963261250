package services

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/selection-crew/selection-service/internal/cache"
	"github.com/selection-crew/selection-service/internal/config"
	"github.com/selection-crew/selection-service/internal/notify"
	"github.com/selection-crew/selection-service/internal/oracle"
	"github.com/selection-crew/selection-service/internal/store"
)

// ServiceManager bundles every pipeline service behind one dependency for
// the HTTP layer.
type ServiceManager interface {
	Question() QuestionService
	Evaluation() EvaluationService
	Shortlist() ShortlistService
	Selection() SelectionService
	Status() StatusService
	ImportExport() ImportExportService
}

// Dependencies carries everything the service layer is wired with.
type Dependencies struct {
	Store             store.RecordStore
	Cache             cache.CacheService
	Oracle            oracle.VideoScoringOracle
	ShortlistNotifier notify.Notifier
	FinalNotifier     notify.Notifier
	Config            *config.Config
	Logger            *slog.Logger
	Validator         *validator.Validate
}

type serviceManager struct {
	question     QuestionService
	evaluation   EvaluationService
	shortlist    ShortlistService
	selection    SelectionService
	status       StatusService
	importExport ImportExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	question := NewQuestionService(deps.Store, deps.Logger, deps.Validator)

	return &serviceManager{
		question:     question,
		evaluation:   NewEvaluationService(deps.Store, deps.Logger, deps.Validator),
		shortlist:    NewShortlistService(deps.Store, deps.ShortlistNotifier, deps.Config, deps.Logger),
		selection:    NewSelectionService(deps.Store, deps.Oracle, deps.FinalNotifier, deps.Config, deps.Logger),
		status:       NewStatusService(deps.Store, deps.Cache, deps.Logger),
		importExport: NewImportExportService(deps.Store, question, deps.Logger),
	}
}

func (m *serviceManager) Question() QuestionService         { return m.question }
func (m *serviceManager) Evaluation() EvaluationService     { return m.evaluation }
func (m *serviceManager) Shortlist() ShortlistService       { return m.shortlist }
func (m *serviceManager) Selection() SelectionService       { return m.selection }
func (m *serviceManager) Status() StatusService             { return m.status }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
