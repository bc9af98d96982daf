// Package main — WebSocket Hub callback wire-up.
//
// registerHubCallbacks, Hub'ın ready snapshot callback'ini ayarlar.
//
// Bu callback neden burada (main package'da)?
// Hub ws paketinde yaşıyor, ama snapshot verisi service katmanından gelir.
// Hub'ın service'lere bağımlı olmasını istemiyoruz (Dependency Inversion) —
// services zaten ws.EventPublisher'a bağımlı, ters yönde bağımlılık döngü
// yaratırdı. main package wire-up noktasıdır, tüm katmanları bağlar.
package main

import (
	"context"

	"github.com/akinalp/akis/services"
	"github.com/akinalp/akis/ws"
)

// registerHubCallbacks, Hub callback'lerini register eder.
//
// Ready snapshot'ı: yeni bağlanan client'a online kullanıcılar + kendi
// mute listeleri gönderilir. Client state'ini bu snapshot'tan kurar,
// sonraki *_update event'leri tam listeyle günceller.
func registerHubCallbacks(
	hub *ws.Hub,
	topicMuteService services.TopicMuteService,
	userMuteService services.UserMuteService,
) {
	hub.SetOnClientReady(func(userID int64) (ws.ReadyData, error) {
		ctx := context.Background()

		topicMutes, err := topicMuteService.ListMutedTopics(ctx, userID)
		if err != nil {
			return ws.ReadyData{}, err
		}

		userMutes, err := userMuteService.ListMutedUsers(ctx, userID)
		if err != nil {
			return ws.ReadyData{}, err
		}

		topics := make([]ws.MutedTopicItem, 0, len(topicMutes))
		for _, m := range topicMutes {
			topics = append(topics, ws.MutedTopicItem{
				StreamID:  m.StreamID,
				Topic:     m.TopicName,
				DateMuted: m.DateMuted,
			})
		}

		mutedUserIDs := make([]int64, 0, len(userMutes))
		for _, m := range userMutes {
			mutedUserIDs = append(mutedUserIDs, m.MutedUserID)
		}

		return ws.ReadyData{
			OnlineUserIDs: hub.GetOnlineUserIDs(),
			MutedTopics:   topics,
			MutedUserIDs:  mutedUserIDs,
		}, nil
	})
}
