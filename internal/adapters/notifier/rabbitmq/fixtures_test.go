package rabbitmq

import "github.com/vncsmyrnk/playervote/internal/core/domain"

func notificationFixture() domain.Notification {
	return domain.Notification{Title: "Voting results summary", Content: "Leader: none | Total: 0 votes | Players: 0"}
}
