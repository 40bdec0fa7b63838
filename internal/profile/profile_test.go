package profile

// Моки: mockgen -source=./internal/profile/profile.go -destination=./mocks/profile_api.go -package=mocks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func newLoaded(t *testing.T, bio, banner *string) (*Editor, *mocks.MockProfileAPI) {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := mocks.NewMockProfileAPI(ctrl)
	e := New(api, "u1")

	api.EXPECT().Me(gomock.Any()).Return(models.User{ID: "u1", Bio: bio, BannerURL: banner}, nil)
	api.EXPECT().Teams(gomock.Any()).Return([]models.Team{{ID: "t1", Name: "Core"}}, nil)
	api.EXPECT().OwnBots(gomock.Any()).Return([]models.Bot{{ID: "42"}}, nil)

	v, err := e.Load(context.Background())
	require.NoError(t, err)
	require.True(t, v.Loaded)

	return e, api
}

func strp(s string) *string { return &s }

func TestLoad_Anonymous(t *testing.T) {
	t.Parallel()

	e := New(mocks.NewMockProfileAPI(gomock.NewController(t)), "")
	_, err := e.Load(context.Background())
	require.ErrorIs(t, err, ErrLoginRequired)
}

func TestLoad_FillsDraft(t *testing.T) {
	t.Parallel()

	e, _ := newLoaded(t, strp("hi"), nil)
	v := e.View()

	require.Equal(t, "hi", v.Bio)
	require.Empty(t, v.BannerURL)
	require.Len(t, v.Teams, 1)
	require.Len(t, v.Bots, 1)
	require.False(t, v.ChangesMade)
}

func TestSet_TracksChanges(t *testing.T) {
	t.Parallel()

	e, _ := newLoaded(t, strp("hi"), nil)

	v, err := e.SetBio("hello")
	require.NoError(t, err)
	require.True(t, v.ChangesMade)

	v, err = e.SetBio("hi")
	require.NoError(t, err)
	require.False(t, v.ChangesMade, "reverting the draft clears the flag")

	_, err = e.SetBio(strings.Repeat("x", MaxBioLen+1))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.SetBanner("ftp://x/y.png")
	require.ErrorIs(t, err, ErrInvalidArgument)

	v, err = e.SetBanner(" https://cdn.example/b.png ")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/b.png", v.BannerURL)
	require.True(t, v.ChangesMade)
}

func TestSet_BeforeLoad(t *testing.T) {
	t.Parallel()

	e := New(nil, "u1")
	_, err := e.SetBio("x")
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestSave_SendsPatchWithNulls(t *testing.T) {
	t.Parallel()

	e, api := newLoaded(t, strp("hi"), strp("https://old.example/b.png"))
	api.EXPECT().UpdateUser(gomock.Any(), models.UserPatch{Bio: strp("new bio"), ClearBanner: true}).Return(nil)

	_, err := e.SetBio("new bio")
	require.NoError(t, err)
	_, err = e.SetBanner("")
	require.NoError(t, err)

	v, err := e.Save(context.Background())
	require.NoError(t, err)
	require.False(t, v.ChangesMade)
	require.False(t, v.ChangesLoading)
	require.Equal(t, "new bio", *v.User.Bio)
	require.Nil(t, v.User.BannerURL)
}

func TestSave_NoChanges(t *testing.T) {
	t.Parallel()

	e, _ := newLoaded(t, nil, nil)

	_, err := e.Save(context.Background())
	require.ErrorIs(t, err, ErrNoChanges)
}

func TestSave_FailureResetsDraft(t *testing.T) {
	t.Parallel()

	e, api := newLoaded(t, strp("hi"), nil)
	api.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	_, err := e.SetBio("changed")
	require.NoError(t, err)

	v, err := e.Save(context.Background())
	require.Error(t, err)
	require.Equal(t, "hi", v.Bio)
	require.False(t, v.ChangesMade)
	require.False(t, v.ChangesLoading)
}
