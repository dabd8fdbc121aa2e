// Package engine runs command batches through the pipelines. Each command
// produces exactly one outcome; policy directives may additionally produce
// eviction outcomes. The engine is single-threaded and fully synchronous:
// every command, including any cascading eviction, completes before the next
// is considered.
package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/services"
	"github.com/PooyaTarashi/railway-reservation/services/admission"
	"github.com/PooyaTarashi/railway-reservation/services/cancellation"
	"github.com/PooyaTarashi/railway-reservation/services/policy"
	"github.com/PooyaTarashi/railway-reservation/services/sequencer"
	"github.com/PooyaTarashi/railway-reservation/utils"
)

// Service dispatches ordered commands to the pipelines. The mutex serializes
// whole batches: the engine core has no notion of concurrent commands, so the
// surrounding application must not interleave them.
type Service struct {
	admission    *admission.Service
	cancellation *cancellation.Service
	policy       *policy.Service
	ready        func() bool
	logger       *zap.Logger
	mu           sync.Mutex
}

// NewService creates the engine dispatcher. ready is the catalog's "catalog
// ready" signal; batches are refused until it reports true.
func NewService(
	admission *admission.Service,
	cancellation *cancellation.Service,
	policy *policy.Service,
	ready func() bool,
	logger *zap.Logger,
) *Service {
	return &Service{
		admission:    admission,
		cancellation: cancellation,
		policy:       policy,
		ready:        ready,
		logger:       logger,
	}
}

// Run validates a command batch, orders it by the sequencing contract, and
// processes it, returning the outcome stream in processing order.
func (s *Service) Run(ctx context.Context, commands []models.Command) ([]models.Outcome, error) {
	if !s.ready() {
		return nil, services.ErrCatalogNotReady
	}

	for i, cmd := range commands {
		if err := validateCommand(cmd); err != nil {
			return nil, services.NewDomainError(services.ErrorTypeValidation,
				"invalid command", err).WithDetail("command", i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := sequencer.Order(commands)
	outcomes := make([]models.Outcome, 0, len(ordered))
	for _, cmd := range ordered {
		outcomes = append(outcomes, s.dispatch(ctx, cmd)...)
	}

	s.logger.Info("command batch processed",
		zap.Int("commands", len(ordered)),
		zap.Int("outcomes", len(outcomes)))
	return outcomes, nil
}

// dispatch routes one command to its pipeline.
func (s *Service) dispatch(ctx context.Context, cmd models.Command) []models.Outcome {
	switch cmd.Kind {
	case models.CommandBooking:
		return []models.Outcome{s.admission.Process(ctx, cmd.At, *cmd.Booking)}
	case models.CommandCancellation:
		return []models.Outcome{s.cancellation.Process(ctx, cmd.At, *cmd.Cancellation)}
	default:
		return s.policy.Apply(ctx, cmd.At, cmd.Kind, *cmd.Policy)
	}
}

// validateCommand checks the envelope and that the payload matching the kind
// is present and well-formed.
func validateCommand(cmd models.Command) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	switch cmd.Kind {
	case models.CommandBooking:
		if cmd.Booking == nil {
			return missingPayload("booking")
		}
		return utils.ValidateStruct(*cmd.Booking)
	case models.CommandCancellation:
		if cmd.Cancellation == nil {
			return missingPayload("cancellation")
		}
		return utils.ValidateStruct(*cmd.Cancellation)
	case models.CommandCapacityCut, models.CommandAgeCeiling,
		models.CommandBlackoutWindow, models.CommandQuota:
		if cmd.Policy == nil {
			return missingPayload("policy")
		}
		if err := utils.ValidateStruct(*cmd.Policy); err != nil {
			return err
		}
		return validatePolicyPayload(cmd.Kind, *cmd.Policy)
	default:
		return services.NewDomainError(services.ErrorTypeValidation,
			"unknown command kind", nil).WithDetail("kind", string(cmd.Kind))
	}
}

// validatePolicyPayload checks the kind-specific directive fields.
func validatePolicyPayload(kind models.CommandKind, p models.PolicyCommand) error {
	switch kind {
	case models.CommandBlackoutWindow:
		if p.Window == nil {
			return missingPayload("window")
		}
		return utils.ValidateStruct(*p.Window)
	case models.CommandQuota:
		if p.Period == "" {
			return missingPayload("period")
		}
	}
	return nil
}

func missingPayload(field string) *services.DomainError {
	return services.NewDomainError(services.ErrorTypeValidation,
		"invalid command", nil).WithDetail("missing", field)
}
