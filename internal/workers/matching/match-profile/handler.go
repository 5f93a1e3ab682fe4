// internal/workers/matching/match-profile/handler.go
package matchprofile

import (
	"context"
	stderrors "errors"
	"time"

	"ghotok-workers/internal/common/camunda"
	"ghotok-workers/internal/common/errors"
	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/common/metrics"
	"ghotok-workers/internal/matching"
	"ghotok-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-profile"
)

// ProfileSource supplies the candidate pool for one gender.
type ProfileSource interface {
	ListByGender(ctx context.Context, gender string) ([]models.Profile, error)
}

type Handler struct {
	config       *Config
	source       ProfileSource
	matcher      *matching.Matcher
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

// NewHandler wires the shared matcher. One matcher must serve every match job in the
// process so the recent window spans all of them.
func NewHandler(config *Config, source ProfileSource, matcher *matching.Matcher, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
		matcher:      matcher,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		metrics.MatchRequests.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	criteria := matching.MatchInput{
		Name:   input.Name,
		Age:    input.Age,
		Gender: matching.Gender(input.Gender),
		Height: input.Height,
	}
	if input.Profession != nil {
		criteria.Profession = *input.Profession
	}

	if !criteria.Gender.Valid() {
		metrics.MatchRequests.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, errors.NewInvalidInputError("gender must be Male or Female")
	}

	pool, err := h.source.ListByGender(ctx, string(criteria.Gender.Opposite()))
	if err != nil {
		return nil, errors.FromDatabaseError("load candidate pool", err)
	}

	byID := make(map[int64]models.Profile, len(pool))
	candidates := make([]matching.Candidate, 0, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
		candidates = append(candidates, p.Candidate())
	}

	result, err := h.matcher.Match(criteria, candidates)
	switch {
	case stderrors.Is(err, matching.ErrInvalidInput):
		metrics.MatchRequests.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, errors.NewInvalidInputError(err.Error())
	case stderrors.Is(err, matching.ErrNoMatchFound):
		metrics.MatchRequests.WithLabelValues(metrics.OutcomeNoMatch).Inc()
		metrics.MatchCompatibleCandidates.Observe(0)
		h.logger.Info("no compatible match", map[string]interface{}{
			"gender":   input.Gender,
			"poolSize": len(pool),
		})
		return nil, errors.NewNoMatchFoundError("try different parameters").
			WithMetadata("poolSize", len(pool))
	case err != nil:
		return nil, errors.NewInternalError(err)
	}

	metrics.MatchRequests.WithLabelValues(metrics.OutcomeMatched).Inc()
	metrics.MatchCompatibleCandidates.Observe(float64(result.CompatibleCount))
	if result.WindowReset {
		metrics.MatchWindowResets.Inc()
	}

	h.logger.Info("match found", map[string]interface{}{
		"matchedId":       result.Matched.ID,
		"compatibleCount": result.CompatibleCount,
		"score":           result.CompatibilityScore,
		"windowReset":     result.WindowReset,
	})

	return &Output{
		InputProfile: InputProfile{
			Name:       criteria.Name,
			Age:        criteria.Age,
			Gender:     string(criteria.Gender),
			Profession: criteria.Profession,
			Height:     criteria.Height,
			BirthYear:  models.BirthYearFor(criteria.Age, h.now()),
		},
		MatchedProfile:     byID[result.Matched.ID],
		CompatibilityScore: result.CompatibilityScore,
		CompatibleCount:    result.CompatibleCount,
	}, nil
}
