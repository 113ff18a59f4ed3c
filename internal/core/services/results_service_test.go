package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

func TestGetResults(t *testing.T) {
	ctx := context.Background()

	t.Run("computes percentages ordered by votes", func(t *testing.T) {
		store := newMemoryStore()
		votes := NewVoteService(store, store, nil)
		svc := NewResultsService(store, store)

		b := store.addPlayer("B", "T2", true)
		a := store.addPlayer("A", "T1", true)
		for i := 0; i < 3; i++ {
			_, err := votes.Vote(ctx, ports.VoteInput{PlayerID: a, Fingerprint: fmt.Sprintf("a-%d", i)})
			require.NoError(t, err)
		}
		_, err := votes.Vote(ctx, ports.VoteInput{PlayerID: b, Fingerprint: "b-0"})
		require.NoError(t, err)

		results, err := svc.GetResults(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), results.TotalVotes)
		require.Len(t, results.Players, 2)
		assert.Equal(t, "A", results.Players[0].Name)
		assert.Equal(t, int64(3), results.Players[0].VoteCount)
		assert.Equal(t, 75, results.Players[0].Percentage)
		assert.Equal(t, "B", results.Players[1].Name)
		assert.Equal(t, 25, results.Players[1].Percentage)
	})

	t.Run("no votes yields zero percentages", func(t *testing.T) {
		store := newMemoryStore()
		store.addPlayer("A", "T1", true)
		svc := NewResultsService(store, store)

		results, err := svc.GetResults(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), results.TotalVotes)
		require.Len(t, results.Players, 1)
		assert.Equal(t, 0, results.Players[0].Percentage)
	})

	t.Run("empty store returns an empty list", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewResultsService(store, store)

		results, err := svc.GetResults(ctx)
		require.NoError(t, err)
		assert.NotNil(t, results.Players)
		assert.Empty(t, results.Players)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMemoryStore()
		store.failWith = errBoom
		svc := NewResultsService(store, store)

		_, err := svc.GetResults(ctx)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestSendResultsSummary(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	notifier := &recordingNotifier{}
	votes := NewVoteService(store, store, nil)
	svc := NewSummaryService(NewResultsService(store, store), notifier)

	leader := store.addPlayer("LeBron", "Lakers", true)
	store.addPlayer("Durant", "Suns", true)
	_, err := votes.Vote(ctx, ports.VoteInput{PlayerID: leader, Fingerprint: "fp"})
	require.NoError(t, err)

	n, err := svc.SendResultsSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Leader: LeBron | Total: 1 votes | Players: 2", n.Content)
	assert.Equal(t, []domain.Notification{*n}, notifier.sent)

	notifier.err = errBoom
	_, err = svc.SendResultsSummary(ctx)
	assert.ErrorIs(t, err, errBoom)
}

func TestListPlayers(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewPlayerService(store)

	players, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)

	store.addPlayer("A", "T", true)
	store.addPlayer("B", "T", false)
	players, err = svc.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "A", players[0].Name)
}
