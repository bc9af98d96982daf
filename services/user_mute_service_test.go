package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/ws"
)

// fakeUserService, UserService'in in-memory test implementasyonu.
type fakeUserService struct {
	users       map[int64]*models.User
	accessCalls int
}

func newFakeUserService(users ...*models.User) *fakeUserService {
	f := &fakeUserService{users: make(map[int64]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeUserService) AccessUserByID(ctx context.Context, targetID int64, allowBots bool) (*models.User, error) {
	f.accessCalls++
	u, ok := f.users[targetID]
	if !ok {
		return nil, pkg.ErrNoSuchUser
	}
	if u.IsBot && !allowBots {
		return nil, pkg.ErrNoSuchUser
	}
	return u, nil
}

func (f *fakeUserService) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	panic("not used in tests")
}

// fakeUserMuteRepo, UserMuteRepository'nin in-memory implementasyonu.
type fakeUserMuteRepo struct {
	mutes []models.MutedUser
}

func (f *fakeUserMuteRepo) Create(ctx context.Context, userID, mutedUserID int64, dateMuted time.Time) error {
	for _, m := range f.mutes {
		if m.UserID == userID && m.MutedUserID == mutedUserID {
			return pkg.ErrUserAlreadyMuted
		}
	}
	f.mutes = append(f.mutes, models.MutedUser{UserID: userID, MutedUserID: mutedUserID, DateMuted: dateMuted})
	return nil
}

func (f *fakeUserMuteRepo) Delete(ctx context.Context, userID, mutedUserID int64) error {
	for i, m := range f.mutes {
		if m.UserID == userID && m.MutedUserID == mutedUserID {
			f.mutes = append(f.mutes[:i], f.mutes[i+1:]...)
			return nil
		}
	}
	return pkg.ErrUserNotMuted
}

func (f *fakeUserMuteRepo) Exists(ctx context.Context, userID, mutedUserID int64) (bool, error) {
	for _, m := range f.mutes {
		if m.UserID == userID && m.MutedUserID == mutedUserID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserMuteRepo) ListByUser(ctx context.Context, userID int64) ([]models.MutedUser, error) {
	var out []models.MutedUser
	for _, m := range f.mutes {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newUserMuteFixture(users ...*models.User) (UserMuteService, *fakeUserMuteRepo, *fakeUserService, *fakeHub) {
	repo := &fakeUserMuteRepo{}
	userSvc := newFakeUserService(users...)
	hub := newFakeHub()
	svc := NewUserMuteService(repo, userSvc, hub, fixedNow)
	return svc, repo, userSvc, hub
}

func TestMuteUserRoundTrip(t *testing.T) {
	hamlet := testUser(1)
	othello := &models.User{ID: 2, Username: "othello"}
	svc, repo, _, hub := newUserMuteFixture(hamlet, othello)
	ctx := context.Background()

	require.NoError(t, svc.MuteUser(ctx, hamlet, othello.ID))

	mutes, err := svc.ListMutedUsers(ctx, hamlet.ID)
	require.NoError(t, err)
	require.Len(t, mutes, 1)
	assert.Equal(t, othello.ID, mutes[0].MutedUserID)
	assert.Equal(t, fixedTime, mutes[0].DateMuted)

	muted, err := svc.IsUserMuted(ctx, hamlet.ID, othello.ID)
	require.NoError(t, err)
	assert.True(t, muted)

	// Mute tek yönlüdür — othello hamlet'i mute etmiş olmaz
	muted, err = svc.IsUserMuted(ctx, othello.ID, hamlet.ID)
	require.NoError(t, err)
	assert.False(t, muted)

	require.Len(t, hub.userEvents[hamlet.ID], 1)
	assert.Equal(t, ws.OpMutedUsersUpdate, hub.userEvents[hamlet.ID][0].Op)

	require.NoError(t, svc.UnmuteUser(ctx, hamlet, othello.ID))
	assert.Empty(t, repo.mutes)
	require.Len(t, hub.userEvents[hamlet.ID], 2)
}

func TestMuteUserSelf(t *testing.T) {
	hamlet := testUser(1)
	svc, repo, userSvc, hub := newUserMuteFixture(hamlet)

	err := svc.MuteUser(context.Background(), hamlet, hamlet.ID)
	assert.ErrorIs(t, err, pkg.ErrCannotMuteSelf)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// Self kontrolü çözümlemeden önce — resolver ve store'a hiç gidilmez
	assert.Zero(t, userSvc.accessCalls)
	assert.Empty(t, repo.mutes)
	assert.Empty(t, hub.userEvents[hamlet.ID])
}

func TestMuteUserAlreadyMuted(t *testing.T) {
	hamlet := testUser(1)
	othello := &models.User{ID: 2, Username: "othello"}
	svc, _, _, _ := newUserMuteFixture(hamlet, othello)
	ctx := context.Background()

	require.NoError(t, svc.MuteUser(ctx, hamlet, othello.ID))

	err := svc.MuteUser(ctx, hamlet, othello.ID)
	assert.ErrorIs(t, err, pkg.ErrUserAlreadyMuted)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestMuteUserUnknownTarget(t *testing.T) {
	hamlet := testUser(1)
	svc, _, _, _ := newUserMuteFixture(hamlet)

	err := svc.MuteUser(context.Background(), hamlet, 999)
	assert.ErrorIs(t, err, pkg.ErrNoSuchUser)
}

func TestMuteUserBotTarget(t *testing.T) {
	hamlet := testUser(1)
	bot := &models.User{ID: 3, Username: "welcome-bot", IsBot: true}
	svc, repo, _, _ := newUserMuteFixture(hamlet, bot)

	// Bot hedefi var olmayan kullanıcı gibi reddedilir
	err := svc.MuteUser(context.Background(), hamlet, bot.ID)
	assert.ErrorIs(t, err, pkg.ErrNoSuchUser)
	assert.Empty(t, repo.mutes)
}

func TestUnmuteUserBotTarget(t *testing.T) {
	hamlet := testUser(1)
	bot := &models.User{ID: 3, Username: "welcome-bot", IsBot: true}
	svc, _, _, _ := newUserMuteFixture(hamlet, bot)

	// Unmute, mute ile aynı çözümleme kısıtlarını kullanır — bot hedefi
	// "not muted" değil "no such user" döner
	err := svc.UnmuteUser(context.Background(), hamlet, bot.ID)
	assert.ErrorIs(t, err, pkg.ErrNoSuchUser)
	assert.NotErrorIs(t, err, pkg.ErrUserNotMuted)
}

func TestUnmuteUserNotMuted(t *testing.T) {
	hamlet := testUser(1)
	othello := &models.User{ID: 2, Username: "othello"}
	svc, _, _, hub := newUserMuteFixture(hamlet, othello)

	err := svc.UnmuteUser(context.Background(), hamlet, othello.ID)
	assert.ErrorIs(t, err, pkg.ErrUserNotMuted)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	assert.Empty(t, hub.userEvents[hamlet.ID])
}
