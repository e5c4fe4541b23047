package zaplog

import (
	"context"
	"testing"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotifierLogsEventFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	notifier := NewNotifier(zap.New(core))

	milestone := domain.DefaultMilestones().For(7)
	notifier.Notify(context.Background(), domain.MilestoneReached(milestone))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "progress event", entries[0].Message)
	assert.Equal(t, "events", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "milestone_reached", fields["kind"])
	assert.EqualValues(t, 7, fields["streak"])
	assert.Equal(t, "7 Day Streak!", fields["headline"])
}
