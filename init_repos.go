// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB bağlantısını alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/akinalp/akis/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
type Repositories struct {
	User      repository.UserRepository
	Session   repository.SessionRepository
	Stream    repository.StreamRepository
	TopicMute repository.TopicMuteRepository
	UserMute  repository.UserMuteRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// Go'nun sql.DB'si thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:      repository.NewSQLiteUserRepo(conn),
		Session:   repository.NewSQLiteSessionRepo(conn),
		Stream:    repository.NewSQLiteStreamRepo(conn),
		TopicMute: repository.NewSQLiteTopicMuteRepo(conn),
		UserMute:  repository.NewSQLiteUserMuteRepo(conn),
	}
}
