// Public domain.

package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lulin-kinder/trigger/internal/notify"
)

func TestNewRequiresConfiguration(t *testing.T) {
	_, err := notify.New("", "C123")
	assert.ErrorIs(t, err, notify.ErrNotConfigured)

	_, err = notify.New("xoxb-test", "")
	assert.ErrorIs(t, err, notify.ErrNotConfigured)

	n, err := notify.New("xoxb-test", "C123")
	require.NoError(t, err)
	assert.NotNil(t, n)
}
