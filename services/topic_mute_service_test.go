package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/ws"
)

// ─── Fakes ───

// fakeStreamService, StreamService'in in-memory test implementasyonu.
// accessCalls, erişimli çözümlemenin kaç kez çağrıldığını sayar — geçersiz
// request'lerin resolver'a hiç ulaşmadığını doğrulamak için.
type fakeStreamService struct {
	streams     map[int64]*models.Stream
	subs        map[int64]map[int64]bool // streamID → userID set
	accessCalls int

	// unmuteResolveErr, set edilirse gevşek çözümleme bu hatayla döner —
	// altyapı hatası simülasyonu.
	unmuteResolveErr error
}

func newFakeStreamService(streams ...*models.Stream) *fakeStreamService {
	f := &fakeStreamService{
		streams: make(map[int64]*models.Stream),
		subs:    make(map[int64]map[int64]bool),
	}
	for _, s := range streams {
		f.streams[s.ID] = s
	}
	return f
}

func (f *fakeStreamService) subscribe(userID, streamID int64) {
	if f.subs[streamID] == nil {
		f.subs[streamID] = make(map[int64]bool)
	}
	f.subs[streamID][userID] = true
}

func (f *fakeStreamService) CreateStream(ctx context.Context, user *models.User, name, description string, isPrivate bool) (*models.Stream, error) {
	panic("not used in tests")
}

func (f *fakeStreamService) ListStreams(ctx context.Context, userID int64) ([]models.Stream, error) {
	panic("not used in tests")
}

func (f *fakeStreamService) Subscribe(ctx context.Context, user *models.User, streamID int64) error {
	panic("not used in tests")
}

func (f *fakeStreamService) AccessStreamByID(ctx context.Context, user *models.User, streamID int64) (*models.Stream, error) {
	f.accessCalls++
	stream, ok := f.streams[streamID]
	if !ok {
		return nil, pkg.ErrInvalidStreamID
	}
	if stream.IsPrivate && !f.subs[stream.ID][user.ID] {
		return nil, pkg.ErrInvalidStreamID
	}
	return stream, nil
}

func (f *fakeStreamService) AccessStreamByName(ctx context.Context, user *models.User, name string) (*models.Stream, error) {
	f.accessCalls++
	for _, stream := range f.streams {
		if stream.Name == name {
			if stream.IsPrivate && !f.subs[stream.ID][user.ID] {
				return nil, pkg.ErrInvalidStreamName
			}
			return stream, nil
		}
	}
	return nil, pkg.ErrInvalidStreamName
}

func (f *fakeStreamService) AccessStreamForUnmuteByID(ctx context.Context, streamID int64) (*models.Stream, error) {
	if f.unmuteResolveErr != nil {
		return nil, f.unmuteResolveErr
	}
	if stream, ok := f.streams[streamID]; ok {
		return stream, nil
	}
	return nil, pkg.ErrInvalidStreamID
}

func (f *fakeStreamService) AccessStreamForUnmuteByName(ctx context.Context, name string) (*models.Stream, error) {
	if f.unmuteResolveErr != nil {
		return nil, f.unmuteResolveErr
	}
	for _, stream := range f.streams {
		if stream.Name == name {
			return stream, nil
		}
	}
	return nil, pkg.ErrInvalidStreamName
}

// fakeTopicMuteRepo, TopicMuteRepository'nin in-memory implementasyonu.
// Topic karşılaştırması DB'deki COLLATE NOCASE gibi case-insensitive'dir.
type fakeTopicMuteRepo struct {
	mutes []models.MutedTopic
}

func topicKeyEqual(a, b models.MutedTopic) bool {
	// NOCASE gibi: sadece ASCII harfler katlanır, Unicode değil.
	return a.UserID == b.UserID && a.StreamID == b.StreamID &&
		asciiLower(a.TopicName) == asciiLower(b.TopicName)
}

func (f *fakeTopicMuteRepo) Create(ctx context.Context, userID, streamID int64, topicName string, dateMuted time.Time) error {
	record := models.MutedTopic{UserID: userID, StreamID: streamID, TopicName: topicName, DateMuted: dateMuted}
	for _, m := range f.mutes {
		if topicKeyEqual(m, record) {
			return pkg.ErrTopicAlreadyMuted
		}
	}
	f.mutes = append(f.mutes, record)
	return nil
}

func (f *fakeTopicMuteRepo) Delete(ctx context.Context, userID, streamID int64, topicName string) error {
	target := models.MutedTopic{UserID: userID, StreamID: streamID, TopicName: topicName}
	for i, m := range f.mutes {
		if topicKeyEqual(m, target) {
			f.mutes = append(f.mutes[:i], f.mutes[i+1:]...)
			return nil
		}
	}
	return pkg.ErrTopicNotMuted
}

func (f *fakeTopicMuteRepo) Exists(ctx context.Context, userID, streamID int64, topicName string) (bool, error) {
	target := models.MutedTopic{UserID: userID, StreamID: streamID, TopicName: topicName}
	for _, m := range f.mutes {
		if topicKeyEqual(m, target) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTopicMuteRepo) ListByUser(ctx context.Context, userID int64) ([]models.MutedTopic, error) {
	var out []models.MutedTopic
	for _, m := range f.mutes {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeHub, EventPublisher'ın event kaydeden implementasyonu.
type fakeHub struct {
	userEvents map[int64][]ws.Event
}

func newFakeHub() *fakeHub {
	return &fakeHub{userEvents: make(map[int64][]ws.Event)}
}

func (f *fakeHub) BroadcastToUser(userID int64, event ws.Event) {
	f.userEvents[userID] = append(f.userEvents[userID], event)
}
func (f *fakeHub) GetOnlineUserIDs() []int64 { return nil }

// ─── Helpers ───

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func testUser(id int64) *models.User {
	return &models.User{ID: id, Username: "hamlet", Language: "en"}
}

func addReq(streamID int64, topic string) *models.UpdateTopicMuteRequest {
	return &models.UpdateTopicMuteRequest{
		StreamRef: models.StreamRef{StreamID: &streamID},
		Topic:     topic,
		Op:        models.MuteOpAdd,
	}
}

func removeReq(streamID int64, topic string) *models.UpdateTopicMuteRequest {
	req := addReq(streamID, topic)
	req.Op = models.MuteOpRemove
	return req
}

func newTopicMuteFixture(streams ...*models.Stream) (TopicMuteService, *fakeTopicMuteRepo, *fakeStreamService, *fakeHub) {
	repo := &fakeTopicMuteRepo{}
	streamSvc := newFakeStreamService(streams...)
	hub := newFakeHub()
	svc := NewTopicMuteService(repo, streamSvc, hub, fixedNow)
	return svc, repo, streamSvc, hub
}

// ─── Tests ───

func TestUpdateMutedTopicAddRemoveRoundTrip(t *testing.T) {
	svc, repo, _, hub := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	user := testUser(1)

	require.NoError(t, svc.UpdateMutedTopic(context.Background(), user, addReq(5, "weather")))

	mutes, err := svc.ListMutedTopics(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, mutes, 1)
	assert.Equal(t, int64(5), mutes[0].StreamID)
	assert.Equal(t, "weather", mutes[0].TopicName)
	assert.Equal(t, fixedTime, mutes[0].DateMuted) // timestamp enjekte edilen saatten gelir

	// Mutasyon kullanıcının bağlantılarına tam liste olarak yayınlanır
	require.Len(t, hub.userEvents[user.ID], 1)
	assert.Equal(t, ws.OpMutedTopicsUpdate, hub.userEvents[user.ID][0].Op)

	require.NoError(t, svc.UpdateMutedTopic(context.Background(), user, removeReq(5, "weather")))
	assert.Empty(t, repo.mutes)
	require.Len(t, hub.userEvents[user.ID], 2)
}

func TestMuteTopicAlreadyMuted(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	user := testUser(1)

	require.NoError(t, svc.UpdateMutedTopic(context.Background(), user, addReq(5, "weather")))

	err := svc.UpdateMutedTopic(context.Background(), user, addReq(5, "weather"))
	assert.ErrorIs(t, err, pkg.ErrTopicAlreadyMuted)
	// Conflict error'ı ErrAlreadyExists'i sarar — handler 409 döner
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestMuteTopicCaseInsensitiveConflict(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	user := testUser(1)

	require.NoError(t, svc.UpdateMutedTopic(context.Background(), user, addReq(5, "Weather")))

	err := svc.UpdateMutedTopic(context.Background(), user, addReq(5, "WEATHER"))
	assert.ErrorIs(t, err, pkg.ErrTopicAlreadyMuted)
}

func TestUnmuteTopicNotMuted(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})

	err := svc.UpdateMutedTopic(context.Background(), testUser(1), removeReq(5, "weather"))
	assert.ErrorIs(t, err, pkg.ErrTopicNotMuted)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUpdateMutedTopicInvalidOp(t *testing.T) {
	svc, repo, streamSvc, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})

	req := addReq(5, "weather")
	req.Op = "toggle"

	err := svc.UpdateMutedTopic(context.Background(), testUser(1), req)
	assert.ErrorIs(t, err, pkg.ErrInvalidOperation)
	// Tanınmayan op hiçbir yan etki üretmez
	assert.Empty(t, repo.mutes)
	assert.Zero(t, streamSvc.accessCalls)
}

func TestUpdateMutedTopicAmbiguousStreamRef(t *testing.T) {
	svc, repo, streamSvc, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})

	streamID := int64(5)
	name := "design"
	req := &models.UpdateTopicMuteRequest{
		StreamRef: models.StreamRef{StreamID: &streamID, StreamName: &name},
		Topic:     "weather",
		Op:        models.MuteOpAdd,
	}

	err := svc.UpdateMutedTopic(context.Background(), testUser(1), req)
	assert.ErrorIs(t, err, pkg.ErrAmbiguousStreamRef)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
	// Geçersiz referans resolver'a ve store'a hiç ulaşmaz
	assert.Zero(t, streamSvc.accessCalls)
	assert.Empty(t, repo.mutes)
}

func TestMuteTopicUnknownStream(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})

	err := svc.UpdateMutedTopic(context.Background(), testUser(1), addReq(999, "weather"))
	assert.ErrorIs(t, err, pkg.ErrInvalidStreamID)
}

func TestMuteTopicPrivateStreamNotSubscribed(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 7, Name: "secret", IsPrivate: true})

	// Abone olmayan kullanıcı için private stream "yok" gibi davranır
	err := svc.UpdateMutedTopic(context.Background(), testUser(1), addReq(7, "weather"))
	assert.ErrorIs(t, err, pkg.ErrInvalidStreamID)
}

func TestMuteTopicPrivateStreamSubscribed(t *testing.T) {
	svc, _, streamSvc, _ := newTopicMuteFixture(&models.Stream{ID: 7, Name: "secret", IsPrivate: true})
	streamSvc.subscribe(1, 7)

	assert.NoError(t, svc.UpdateMutedTopic(context.Background(), testUser(1), addReq(7, "weather")))
}

func TestUnmuteTopicUnknownStreamUnifiedError(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})

	// Unmute'ta çözümlenemeyen stream, mute edilmemiş topic ile AYNI hatayı
	// döner — "invalid stream" yerine "not muted"
	err := svc.UpdateMutedTopic(context.Background(), testUser(1), removeReq(999, "weather"))
	assert.ErrorIs(t, err, pkg.ErrTopicNotMuted)
	assert.NotErrorIs(t, err, pkg.ErrInvalidStreamID)
}

func TestUnmuteTopicResolverInternalError(t *testing.T) {
	svc, _, streamSvc, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	streamSvc.unmuteResolveErr = errors.New("database is locked")

	// Altyapı hatası "not muted"a çevrilmez — olduğu gibi yukarı çıkar
	err := svc.UpdateMutedTopic(context.Background(), testUser(1), removeReq(5, "weather"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, pkg.ErrTopicNotMuted)
	assert.NotErrorIs(t, err, pkg.ErrNotFound)
	assert.EqualError(t, err, "database is locked")
}

func TestUnmuteTopicByNameAfterMuteByID(t *testing.T) {
	svc, repo, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	user := testUser(1)

	require.NoError(t, svc.UpdateMutedTopic(context.Background(), user, addReq(5, "weather")))

	name := "design"
	req := &models.UpdateTopicMuteRequest{
		StreamRef: models.StreamRef{StreamName: &name},
		Topic:     "weather",
		Op:        models.MuteOpRemove,
	}
	require.NoError(t, svc.UpdateMutedTopic(context.Background(), user, req))
	assert.Empty(t, repo.mutes)
}

func TestIsTopicMutedReflectsMutations(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	user := testUser(1)
	ctx := context.Background()

	// Önce sorgula — negatif sonuç cache'lenir
	muted, err := svc.IsTopicMuted(ctx, user.ID, 5, "weather")
	require.NoError(t, err)
	assert.False(t, muted)

	// Mute sonrası cache invalidate edilmiş olmalı — eski false dönmez
	require.NoError(t, svc.UpdateMutedTopic(ctx, user, addReq(5, "weather")))

	muted, err = svc.IsTopicMuted(ctx, user.ID, 5, "weather")
	require.NoError(t, err)
	assert.True(t, muted)

	// Case farkı aynı cache key'e düşer
	muted, err = svc.IsTopicMuted(ctx, user.ID, 5, "WEATHER")
	require.NoError(t, err)
	assert.True(t, muted)
}

func TestMuteCacheKeyFoldsASCIIOnly(t *testing.T) {
	// ASCII case farkı aynı key'e düşer (NOCASE gibi)
	assert.Equal(t, muteCacheKey(1, 5, "Weather"), muteCacheKey(1, 5, "weather"))
	// Unicode case farkı DB'de ayrı kayıttır — key'ler de ayrı kalmalı
	assert.NotEqual(t, muteCacheKey(1, 5, "É"), muteCacheKey(1, 5, "é"))
}

func TestIsTopicMutedNonASCIICaseVariantsAreDistinct(t *testing.T) {
	svc, _, _, _ := newTopicMuteFixture(&models.Stream{ID: 5, Name: "design"})
	user := testUser(1)
	ctx := context.Background()

	require.NoError(t, svc.UpdateMutedTopic(ctx, user, addReq(5, "É")))

	muted, err := svc.IsTopicMuted(ctx, user.ID, 5, "É")
	require.NoError(t, err)
	assert.True(t, muted)

	// "é" DB açısından farklı bir topic — mute edilenin cache'lenmiş
	// cevabını devralmamalı
	muted, err = svc.IsTopicMuted(ctx, user.ID, 5, "é")
	require.NoError(t, err)
	assert.False(t, muted)
}
