package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
)

func TestCanEditWithoutConfiguredKey(t *testing.T) {
	config := common.NewDefaultConfig()
	svc := NewService(config, nil, arbor.NewLogger())

	assert.True(t, svc.CanEdit(""))
	assert.True(t, svc.CanEdit("anything"))
}

func TestCanEditWithConfiguredKey(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Auth.EditKey = "secret"
	svc := NewService(config, nil, arbor.NewLogger())

	assert.True(t, svc.CanEdit("secret"))
	assert.False(t, svc.CanEdit(""))
	assert.False(t, svc.CanEdit("wrong"))
}

func TestIsRedirectFeatureEnabled(t *testing.T) {
	config := common.NewDefaultConfig()
	svc := NewService(config, nil, arbor.NewLogger())
	assert.True(t, svc.IsRedirectFeatureEnabled())

	config.Redirects.Enabled = false
	assert.False(t, svc.IsRedirectFeatureEnabled())
}
