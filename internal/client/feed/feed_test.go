package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/api/apitest"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identity struct{ d *models.UserDetails }

func (i identity) Details() *models.UserDetails { return i.d }

var me = identity{d: &models.UserDetails{UserID: "u1", ProfileID: "p1"}}

func sampleWaves() []models.Wave {
	return []models.Wave{
		{ID: "w1", Title: "Clean the Ocean", Hashtag: "ocean", CreatorID: models.RefTo("p2")},
		{ID: "w2", Title: "Plant Trees", Hashtag: "trees", CreatorID: models.RefTo("p2")},
		{ID: "w3", Title: "Ocean Dive Fundraiser", Hashtag: "#Ocean", CreatorID: models.RefTo("p3"),
			Participants: []models.Ref{models.RefTo("p1")}},
		{ID: "w4", Title: "Food Drive", Hashtag: "food", CreatorID: models.RefTo("p1")},
	}
}

func ids(ws []models.Wave) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

func staticFake(waves []models.Wave) *apitest.Fake {
	return &apitest.Fake{
		WavesFunc: func(_ context.Context, q api.WaveQuery) (*models.WavePage, error) {
			return &models.WavePage{Waves: waves, Page: q.Page, Pages: 1, Total: len(waves)}, nil
		},
		HashtagsFunc: func(context.Context) ([]string, error) {
			return []string{"ocean", "trees", "food"}, nil
		},
	}
}

func TestFilter_Match(t *testing.T) {
	w := models.Wave{Title: "Clean the Ocean", Hashtag: "#ocean"}
	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero", Filter{}, true},
		{"title substring any case", Filter{Title: "OCEAN"}, true},
		{"title miss", Filter{Title: "forest"}, false},
		{"tag in set", Filter{Tags: []string{"trees", "ocean"}}, true},
		{"tag not in set", Filter{Tags: []string{"trees"}}, false},
		{"both must hold", Filter{Title: "clean", Tags: []string{"trees"}}, false},
		{"both hold", Filter{Title: "clean", Tags: []string{"Ocean"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Match(w))
		})
	}
}

func TestLoad_FetchesWavesAndHashtags(t *testing.T) {
	fake := staticFake(sampleWaves())
	f := New(fake, me, Options{}, nil)

	require.NoError(t, f.Load(context.Background()))

	assert.Equal(t, []string{"w1", "w2", "w3", "w4"}, ids(f.Waves()))
	assert.Equal(t, []string{"ocean", "trees", "food"}, f.Hashtags())
	assert.False(t, f.HasMore())
	assert.Equal(t, 1, fake.Count("Waves"))
	assert.Equal(t, 1, fake.Count("Hashtags"))
}

func TestLoad_ErrorKeepsPreviousListing(t *testing.T) {
	fail := false
	fake := staticFake(sampleWaves())
	fake.HashtagsFunc = func(context.Context) ([]string, error) {
		if fail {
			return nil, common.ErrorNotFound
		}
		return []string{"ocean"}, nil
	}
	f := New(fake, me, Options{}, nil)
	require.NoError(t, f.Load(context.Background()))

	fail = true
	err := f.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Len(t, f.Waves(), 4)
}

func TestSetFilter_TwoHashtagsThenClear(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []api.WaveQuery
	)
	fake := staticFake(sampleWaves())
	fake.WavesFunc = func(_ context.Context, q api.WaveQuery) (*models.WavePage, error) {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		return &models.WavePage{Waves: sampleWaves(), Pages: 1}, nil
	}
	f := New(fake, me, Options{}, nil)
	ctx := context.Background()
	require.NoError(t, f.Load(ctx))

	require.NoError(t, f.SetFilter(ctx, Filter{Tags: []string{"ocean", "trees"}}))
	assert.Equal(t, []string{"w1", "w2", "w3"}, ids(f.Waves()))

	require.NoError(t, f.SetFilter(ctx, Filter{}))
	assert.Equal(t, []string{"w1", "w2", "w3", "w4"}, ids(f.Waves()))

	require.Len(t, queries, 3)
	assert.Equal(t, []string{"ocean", "trees"}, queries[1].Hashtags)
	assert.Empty(t, queries[2].Hashtags)
}

func TestSetFilter_TitleAndTagCompose(t *testing.T) {
	f := New(staticFake(sampleWaves()), me, Options{}, nil)
	require.NoError(t, f.SetFilter(context.Background(), Filter{Title: "ocean", Tags: []string{"ocean"}}))
	assert.Equal(t, []string{"w1", "w3"}, ids(f.Waves()))
	assert.Equal(t, "ocean", f.Filter().Title)
}

func TestLoad_StaleResultIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	first := true
	var mu sync.Mutex
	fake := staticFake(nil)
	fake.WavesFunc = func(_ context.Context, q api.WaveQuery) (*models.WavePage, error) {
		mu.Lock()
		slow := first
		first = false
		mu.Unlock()
		if slow {
			started <- struct{}{}
			<-release
			return &models.WavePage{Waves: []models.Wave{{ID: "old"}}, Pages: 1}, nil
		}
		return &models.WavePage{Waves: []models.Wave{{ID: "new"}}, Pages: 1}, nil
	}
	f := New(fake, me, Options{}, nil)

	done := make(chan error, 1)
	go func() { done <- f.Load(context.Background()) }()
	<-started

	require.NoError(t, f.Load(context.Background()))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"new"}, ids(f.Waves()))
}

func TestClose_DiscardsInFlightAndRejectsLoads(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fake := staticFake(nil)
	fake.WavesFunc = func(context.Context, api.WaveQuery) (*models.WavePage, error) {
		close(started)
		<-release
		return &models.WavePage{Waves: sampleWaves(), Pages: 1}, nil
	}
	f := New(fake, me, Options{}, nil)

	done := make(chan error, 1)
	go func() { done <- f.Load(context.Background()) }()
	<-started
	f.Close()
	close(release)
	require.NoError(t, <-done)

	assert.Empty(t, f.Waves())
	assert.ErrorIs(t, f.Load(context.Background()), ErrClosed)
	assert.ErrorIs(t, f.LoadMore(context.Background()), ErrClosed)
}

func TestLoadMore_Pages(t *testing.T) {
	all := make([]models.Wave, 5)
	for i := range all {
		all[i] = models.Wave{ID: string(rune('a' + i))}
	}
	fake := staticFake(nil)
	fake.WavesFunc = func(_ context.Context, q api.WaveQuery) (*models.WavePage, error) {
		start := (q.Page - 1) * q.Limit
		end := min(start+q.Limit, len(all))
		return &models.WavePage{Waves: all[start:end], Page: q.Page}, nil
	}
	f := New(fake, me, Options{PageSize: 2}, nil)
	ctx := context.Background()

	require.NoError(t, f.Load(ctx))
	assert.True(t, f.HasMore())
	require.NoError(t, f.LoadMore(ctx))
	assert.True(t, f.HasMore())
	require.NoError(t, f.LoadMore(ctx))
	assert.False(t, f.HasMore())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(f.Waves()))

	require.NoError(t, f.LoadMore(ctx))
	assert.Equal(t, 3, fake.Count("Waves"))
}

func TestLoadMore_UsesTotalPages(t *testing.T) {
	fake := staticFake(nil)
	fake.WavesFunc = func(_ context.Context, q api.WaveQuery) (*models.WavePage, error) {
		return &models.WavePage{Waves: []models.Wave{{ID: "x"}}, Page: q.Page, Pages: 3}, nil
	}
	f := New(fake, me, Options{PageSize: 10}, nil)
	require.NoError(t, f.Load(context.Background()))
	assert.True(t, f.HasMore())
	require.NoError(t, f.LoadMore(context.Background()))
	assert.Len(t, f.Waves(), 1, "duplicate ids are not appended twice")
}

func TestParticipate_Optimistic(t *testing.T) {
	fake := staticFake(sampleWaves())
	f := New(fake, me, Options{}, nil)
	ctx := context.Background()
	require.NoError(t, f.Load(ctx))

	require.NoError(t, f.Participate(ctx, "w1"))

	w, ok := f.Wave("w1")
	require.True(t, ok)
	assert.True(t, w.HasParticipant("p1"))
	assert.True(t, f.Dirty())
	assert.Equal(t, 1, fake.Count("Participate"))
	assert.Equal(t, 1, fake.Count("Waves"), "no refetch after a single participation")
}

func TestParticipate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		who  Identity
		wave string
		want error
	}{
		{"anonymous", identity{}, "w1", common.ErrorUnauthorized},
		{"unknown wave", me, "nope", ErrWaveNotFound},
		{"already joined", me, "w3", ErrAlreadyParticipant},
		{"own wave", me, "w4", ErrOwnWave},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := staticFake(sampleWaves())
			f := New(fake, tt.who, Options{}, nil)
			require.NoError(t, f.Load(context.Background()))

			err := f.Participate(context.Background(), tt.wave)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, fake.Count("Participate"))
		})
	}
}

func TestParticipate_BackendErrorLeavesWaveUntouched(t *testing.T) {
	boom := errors.New("boom")
	fake := staticFake(sampleWaves())
	fake.ParticipateFunc = func(context.Context, string) error { return boom }
	f := New(fake, me, Options{}, nil)
	require.NoError(t, f.Load(context.Background()))

	require.ErrorIs(t, f.Participate(context.Background(), "w1"), boom)
	w, _ := f.Wave("w1")
	assert.False(t, w.HasParticipant("p1"))
	assert.False(t, f.Dirty())
}

func TestParticipate_ReconcilesAfterThreshold(t *testing.T) {
	fake := staticFake(sampleWaves())
	f := New(fake, me, Options{ReconcileEvery: 2}, nil)
	ctx := context.Background()
	require.NoError(t, f.Load(ctx))

	require.NoError(t, f.Participate(ctx, "w1"))
	require.NoError(t, f.Participate(ctx, "w2"))

	assert.Equal(t, 2, fake.Count("Waves"))
	assert.False(t, f.Dirty())
}

func TestReconcile(t *testing.T) {
	fake := staticFake(sampleWaves())
	f := New(fake, me, Options{ReconcileAfter: time.Minute}, nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }
	ctx := context.Background()

	reloaded, err := f.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded, "never fetched")

	reloaded, err = f.Reconcile(ctx)
	require.NoError(t, err)
	assert.False(t, reloaded, "fresh and clean")

	require.NoError(t, f.Participate(ctx, "w1"))
	reloaded, err = f.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded, "dirty")

	now = now.Add(2 * time.Minute)
	reloaded, err = f.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded, "stale")
}

func TestCharities_FilterByName(t *testing.T) {
	fake := &apitest.Fake{
		CharitiesFunc: func(context.Context) ([]models.Profile, error) {
			return []models.Profile{{ID: "c1", Name: "Ocean Trust"}, {ID: "c2", Name: "Food Bank"}}, nil
		},
	}
	f := New(fake, me, Options{}, nil)

	got, err := f.Charities(context.Background(), "ocean")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)

	got, err = f.Charities(context.Background(), " ")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
