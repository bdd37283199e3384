package di

import (
	"testing"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/config"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNew_WiresDependencies(t *testing.T) {
	cfg := config.Get()
	log := logger.New(logger.DefaultConfig())

	container, err := New(&gorm.DB{}, cfg, log)

	require.NoError(t, err)
	assert.NotNil(t, container.Warehouse, "health probe and shutdown go through the repository")
	assert.NotNil(t, container.ConversationService)
	assert.NotNil(t, container.AssessmentService)
	assert.Same(t, log, container.Logger)
	if !cfg.Redis.Enabled {
		assert.Nil(t, container.Remote)
	}
}

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := New(nil, config.Get(), nil)

	assert.Error(t, err)
}
