package ports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.spur.run/spur/internal/core/ports"
)

func TestWatchOp_String(t *testing.T) {
	assert.Equal(t, "Created", ports.OpCreated.String())
	assert.Equal(t, "Removed", ports.OpRemoved.String())
	assert.Equal(t, "Modified", ports.OpModified.String())
	assert.Equal(t, "Unknown", ports.WatchOp(99).String())
}

func TestWatchEvent_Structural(t *testing.T) {
	assert.True(t, ports.WatchEvent{Operation: ports.OpCreated}.Structural())
	assert.True(t, ports.WatchEvent{Operation: ports.OpRemoved}.Structural())
	assert.False(t, ports.WatchEvent{Operation: ports.OpModified}.Structural())
}
