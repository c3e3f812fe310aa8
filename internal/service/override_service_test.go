package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apaulliao/classboard-api/internal/models"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
)

func TestOverrideServiceToggles(t *testing.T) {
	svc := NewOverrideService(nil)

	flags := svc.SetManualEco(true)
	assert.True(t, flags.ManualEco)

	flags = svc.SetAutoEcoOverride(true)
	assert.True(t, flags.AutoEcoOverride)
	assert.True(t, flags.ManualEco)

	flags = svc.SetManualEco(false)
	assert.False(t, flags.ManualEco)
}

func TestOverrideServiceSpecialLifecycle(t *testing.T) {
	svc := NewOverrideService(nil)

	payload := json.RawMessage(`{"text":"assembly at 10"}`)
	flags, err := svc.SetSpecial(models.SubmodeMarquee, payload)
	require.NoError(t, err)
	require.NotNil(t, flags.Special)
	assert.Equal(t, models.SubmodeMarquee, flags.Special.Submode)
	assert.JSONEq(t, `{"text":"assembly at 10"}`, string(flags.Special.Payload))

	flags = svc.ClearSpecial()
	assert.Nil(t, flags.Special)
}

func TestOverrideServiceRejectsUnknownSubmode(t *testing.T) {
	svc := NewOverrideService(nil)
	_, err := svc.SetSpecial("BLINKING", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOverrideServiceFlagsReturnsCopy(t *testing.T) {
	svc := NewOverrideService(nil)
	_, err := svc.SetSpecial(models.SubmodeExclusive, nil)
	require.NoError(t, err)

	flags := svc.Flags()
	flags.Special.Submode = models.SubmodeMarquee

	assert.Equal(t, models.SubmodeExclusive, svc.Flags().Special.Submode)
}
