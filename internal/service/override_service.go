package service

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/apaulliao/classboard-api/internal/models"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
)

// OverrideService is the override controller: it owns the operator-driven
// flags the engine reads on every tick. The engine itself never learns how a
// flag was produced.
type OverrideService struct {
	mu     sync.RWMutex
	flags  models.OverrideFlags
	logger *zap.Logger
}

// NewOverrideService constructs an OverrideService.
func NewOverrideService(logger *zap.Logger) *OverrideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverrideService{logger: logger}
}

// Flags returns a copy of the current override flags.
func (s *OverrideService) Flags() models.OverrideFlags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flags := s.flags
	if flags.Special != nil {
		special := *flags.Special
		flags.Special = &special
	}
	return flags
}

// SetManualEco toggles the manual eco flag.
func (s *OverrideService) SetManualEco(on bool) models.OverrideFlags {
	s.mu.Lock()
	s.flags.ManualEco = on
	flags := s.flags
	s.mu.Unlock()
	s.logger.Info("manual eco toggled", zap.Bool("on", on))
	return flags
}

// SetAutoEcoOverride toggles suppression of the automatic in-class dimming.
func (s *OverrideService) SetAutoEcoOverride(on bool) models.OverrideFlags {
	s.mu.Lock()
	s.flags.AutoEcoOverride = on
	flags := s.flags
	s.mu.Unlock()
	s.logger.Info("auto eco override toggled", zap.Bool("on", on))
	return flags
}

// SetSpecial installs a special broadcast with the given submode.
func (s *OverrideService) SetSpecial(submode models.SpecialSubmode, payload json.RawMessage) (models.OverrideFlags, error) {
	switch submode {
	case models.SubmodeMarquee, models.SubmodeExclusive:
	default:
		return models.OverrideFlags{}, appErrors.Clone(appErrors.ErrValidation, "submode must be MARQUEE or EXCLUSIVE")
	}

	s.mu.Lock()
	s.flags.Special = &models.SpecialStatus{Submode: submode, Payload: payload}
	flags := s.flags
	s.mu.Unlock()
	s.logger.Info("special status set", zap.String("submode", string(submode)))
	return flags, nil
}

// ClearSpecial removes any active special broadcast.
func (s *OverrideService) ClearSpecial() models.OverrideFlags {
	s.mu.Lock()
	s.flags.Special = nil
	flags := s.flags
	s.mu.Unlock()
	s.logger.Info("special status cleared")
	return flags
}
