package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/api/apitest"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccount implements Account for unit tests.
type fakeAccount struct {
	mu      sync.Mutex
	details *models.UserDetails
	flips   []bool
}

func (a *fakeAccount) Details() *models.UserDetails {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.details == nil {
		return nil
	}
	d := *a.details
	return &d
}

func (a *fakeAccount) UpdateProfileExists(exists bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flips = append(a.flips, exists)
	if a.details != nil {
		a.details.ProfileExists = exists
	}
}

func account(role models.Role, profileID string) *fakeAccount {
	return &fakeAccount{details: &models.UserDetails{UserID: "u1", ProfileID: profileID, Role: role}}
}

func TestProfileComplete_AddsDerivedFields(t *testing.T) {
	var got map[string]any
	fake := &apitest.Fake{
		CreateProfileFunc: func(_ context.Context, payload any) error {
			got = payload.(map[string]any)
			return nil
		},
	}
	acc := account(models.RoleCompany, "")
	svc := NewProfileService(fake, acc, nil)

	in := map[string]any{"name": "  Acme   Green Co ", "industry": "Retail"}
	require.NoError(t, svc.Complete(context.Background(), models.RoleCompany, in))

	assert.Equal(t, "acme-green-co", got["slug"])
	assert.Equal(t, "u1", got["userId"])
	assert.Equal(t, models.RoleCompany, got["role"])
	assert.Equal(t, "Retail", got["industry"])
	assert.NotContains(t, in, "slug", "caller payload is not modified")
	assert.Equal(t, []bool{true}, acc.flips)
}

func TestProfileComplete_FailureKeepsFlag(t *testing.T) {
	boom := errors.New("boom")
	fake := &apitest.Fake{CreateProfileFunc: func(context.Context, any) error { return boom }}
	acc := account(models.RolePerson, "")
	svc := NewProfileService(fake, acc, nil)

	err := svc.Complete(context.Background(), "", map[string]any{"name": "Ann"})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, acc.flips)
}

func TestProfileComplete_Anonymous(t *testing.T) {
	fake := &apitest.Fake{}
	svc := NewProfileService(fake, &fakeAccount{}, nil)
	err := svc.Complete(context.Background(), models.RolePerson, nil)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Zero(t, fake.Count("CreateProfile"))
}

func TestProfileUpdate(t *testing.T) {
	var (
		gotID   string
		payload map[string]any
	)
	fake := &apitest.Fake{
		UpdateProfileFunc: func(_ context.Context, id string, p any) error {
			gotID, payload = id, p.(map[string]any)
			return nil
		},
	}
	svc := NewProfileService(fake, account(models.RoleCharity, "p9"), nil)

	require.NoError(t, svc.Update(context.Background(), map[string]any{"name": "Ocean Trust"}))
	assert.Equal(t, "p9", gotID)
	assert.Equal(t, "ocean-trust", payload["slug"])

	svc = NewProfileService(fake, account(models.RoleCharity, ""), nil)
	require.ErrorIs(t, svc.Update(context.Background(), nil), ErrNoProfile)
}

func TestProfileBySlug_Empty(t *testing.T) {
	svc := NewProfileService(&apitest.Fake{}, account(models.RolePerson, "p1"), nil)
	_, err := svc.BySlug(context.Background(), " ")
	require.ErrorIs(t, err, ErrMissingID)
	_, err = svc.Metrics(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingID)
}

func TestProfilePublic_Charity(t *testing.T) {
	fake := &apitest.Fake{
		ProfileBySlugFunc: func(_ context.Context, slug string) (*models.Profile, error) {
			return &models.Profile{ID: "c1", Slug: slug, Role: models.RoleCharity, UserID: models.RefTo("u7")}, nil
		},
		UserMetricsFunc: func(context.Context, string) (models.UserMetrics, error) {
			return models.UserMetrics{"wavesCreated": 2}, nil
		},
		WavesByCreatorFunc: func(_ context.Context, id string) ([]models.Wave, error) {
			return []models.Wave{{ID: "created-" + id}}, nil
		},
		WavesByCharityFunc: func(_ context.Context, id string) ([]models.Wave, error) {
			return []models.Wave{{ID: "for-" + id}}, nil
		},
		ParticipationsOfFunc: func(_ context.Context, userID string) ([]models.Wave, error) {
			return []models.Wave{{ID: "part-" + userID}}, nil
		},
	}
	svc := NewProfileService(fake, account(models.RolePerson, "p1"), nil)

	pp, err := svc.Public(context.Background(), "ocean-trust")
	require.NoError(t, err)
	assert.Equal(t, "ocean-trust", pp.Profile.Slug)
	assert.Equal(t, 2.0, pp.Metrics["wavesCreated"])
	assert.Equal(t, "created-c1", pp.Created[0].ID)
	assert.Equal(t, "for-c1", pp.ForCharity[0].ID)
	assert.Equal(t, "part-u7", pp.Participated[0].ID)
}

func TestProfilePublic_PersonSkipsCharityWaves(t *testing.T) {
	fake := &apitest.Fake{
		ProfileBySlugFunc: func(context.Context, string) (*models.Profile, error) {
			return &models.Profile{ID: "p2", Role: models.RolePerson}, nil
		},
	}
	svc := NewProfileService(fake, account(models.RolePerson, "p1"), nil)

	pp, err := svc.Public(context.Background(), "ann")
	require.NoError(t, err)
	assert.Nil(t, pp.ForCharity)
	assert.Zero(t, fake.Count("WavesByCharity"))
	assert.Zero(t, fake.Count("ParticipationsOf"))
}

func TestProfilePublic_SectionErrorFails(t *testing.T) {
	fake := &apitest.Fake{
		ProfileBySlugFunc: func(context.Context, string) (*models.Profile, error) {
			return &models.Profile{ID: "p2"}, nil
		},
		WavesByCreatorFunc: func(context.Context, string) ([]models.Wave, error) {
			return nil, api.ErrUnavailable
		},
	}
	svc := NewProfileService(fake, account(models.RolePerson, "p1"), nil)
	_, err := svc.Public(context.Background(), "x")
	require.ErrorIs(t, err, api.ErrUnavailable)
}

func TestWaveCreate_ApprovalByRole(t *testing.T) {
	tests := []struct {
		name        string
		role        models.Role
		wantStatus  models.ApprovalStatus
		wantCharity any
	}{
		{"company", models.RoleCompany, models.ApprovalPending, "c1"},
		{"person", models.RolePerson, models.ApprovalPending, "c1"},
		{"charity", models.RoleCharity, models.ApprovalApproved, "p1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			fake := &apitest.Fake{CreateWaveFunc: func(_ context.Context, p any) error {
				got = p.(map[string]any)
				return nil
			}}
			svc := NewWaveService(fake, account(tt.role, "p1"), nil)

			require.NoError(t, svc.Create(context.Background(), map[string]any{"title": "T", "charityId": "c1"}))
			assert.Equal(t, tt.wantStatus, got["charityApprovalStatus"])
			assert.Equal(t, tt.wantCharity, got["charityId"])
		})
	}
}

func TestWaveCreate_RequiresProfile(t *testing.T) {
	fake := &apitest.Fake{}
	svc := NewWaveService(fake, account(models.RolePerson, ""), nil)
	require.ErrorIs(t, svc.Create(context.Background(), nil), ErrNoProfile)
	assert.Zero(t, fake.Count("CreateWave"))
}

func TestWaveSetApproval(t *testing.T) {
	wave := models.Wave{ID: "w1", CharityID: models.RefTo("c1"), CreatorID: models.RefTo("p2")}
	tests := []struct {
		name    string
		profile string
		wave    models.Wave
		status  models.ApprovalStatus
		wantErr error
		calls   int
	}{
		{"charity approves", "c1", wave, models.ApprovalApproved, nil, 1},
		{"charity rejects", "c1", wave, models.ApprovalRejected, nil, 1},
		{"someone else", "p3", wave, models.ApprovalApproved, ErrNotWaveCharity, 0},
		{"no charity", "c1", models.Wave{ID: "w2"}, models.ApprovalApproved, ErrNotWaveCharity, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.ApprovalStatus
			fake := &apitest.Fake{SetCharityApprovalFunc: func(_ context.Context, _ string, s models.ApprovalStatus) error {
				got = s
				return nil
			}}
			svc := NewWaveService(fake, account(models.RoleCharity, tt.profile), nil)

			err := svc.SetApproval(context.Background(), tt.wave, tt.status)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, got)
			}
			assert.Equal(t, tt.calls, fake.Count("SetCharityApproval"))
		})
	}
}

func TestWaveSetApproval_PendingIsNotAVerdict(t *testing.T) {
	svc := NewWaveService(&apitest.Fake{}, account(models.RoleCharity, "c1"), nil)
	err := svc.SetApproval(context.Background(), models.Wave{ID: "w", CharityID: models.RefTo("c1")}, models.ApprovalPending)
	require.Error(t, err)
}

func TestWaveMineAndForCharity(t *testing.T) {
	var creator, charity string
	fake := &apitest.Fake{
		WavesByCreatorFunc: func(_ context.Context, id string) ([]models.Wave, error) {
			creator = id
			return []models.Wave{{ID: "a"}}, nil
		},
		WavesByCharityFunc: func(_ context.Context, id string) ([]models.Wave, error) {
			charity = id
			return []models.Wave{{ID: "b"}}, nil
		},
	}
	ctx := context.Background()

	svc := NewWaveService(fake, account(models.RoleCharity, "c1"), nil)
	mine, err := svc.Mine(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "c1", creator)
	forMe, err := svc.ForCharity(ctx)
	require.NoError(t, err)
	assert.Len(t, forMe, 1)
	assert.Equal(t, "c1", charity)

	svc = NewWaveService(fake, account(models.RoleCompany, "p1"), nil)
	forMe, err = svc.ForCharity(ctx)
	require.NoError(t, err)
	assert.Nil(t, forMe)
	assert.Equal(t, 1, fake.Count("WavesByCharity"))
}

func TestWaveUpdateDelete_MissingID(t *testing.T) {
	svc := NewWaveService(&apitest.Fake{}, account(models.RolePerson, "p1"), nil)
	require.ErrorIs(t, svc.Update(context.Background(), "", nil), ErrMissingID)
	require.ErrorIs(t, svc.Delete(context.Background(), ""), ErrMissingID)
}
