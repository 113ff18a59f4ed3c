package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type summaryService struct {
	results  ports.ResultsService
	notifier ports.Notifier
}

func NewSummaryService(results ports.ResultsService, notifier ports.Notifier) ports.SummaryService {
	return &summaryService{
		results:  results,
		notifier: notifier,
	}
}

// SendResultsSummary notifies the owner of the current leader and totals.
func (s *summaryService) SendResultsSummary(ctx context.Context) (*domain.Notification, error) {
	results, err := s.results.GetResults(ctx)
	if err != nil {
		return nil, err
	}

	leader := "none"
	if len(results.Players) > 0 {
		leader = results.Players[0].Name
	}

	n := domain.Notification{
		Title:   "Voting results summary",
		Content: fmt.Sprintf("Leader: %s | Total: %d votes | Players: %d", leader, results.TotalVotes, len(results.Players)),
	}

	ok, err := s.notifier.Notify(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to send results summary: %w", err)
	}
	if !ok {
		return nil, errors.New("results summary was not accepted by the notification sink")
	}

	return &n, nil
}
