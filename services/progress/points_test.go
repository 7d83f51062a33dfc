package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPointsAccumulates(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddPoints(1, 50))
	require.NoError(t, svc.AddPoints(1, 30))

	total, err := svc.Total(1)
	require.NoError(t, err)
	assert.Equal(t, 80, total)
}

func TestAddPointsNegativeRejected(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.AddPoints(1, -1), ErrNegativeAmount)

	total, err := svc.Total(1)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestTotalDefaultsToZero(t *testing.T) {
	svc, _ := newTestService(t)

	total, err := svc.Total(99)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestConcurrentAddsLoseNothing(t *testing.T) {
	svc, _ := newTestService(t)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddPoints(1, 10))
		}()
	}
	wg.Wait()

	total, err := svc.Total(1)
	require.NoError(t, err)
	assert.Equal(t, workers*10, total)
}

func TestRankTiers(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		total int
		want  string
	}{
		{0, "Starter"},
		{19, "Starter"},
		{20, "Newbie"},
		{39, "Newbie"},
		{40, "Explorer"},
		{80, "Achiever"},
		{150, "Specialist"},
		{299, "Specialist"},
		{300, "Expert"},
		{600, "Master"},
		{10000, "Master"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, svc.Rank(tc.total), "total=%d", tc.total)
	}
}

func TestPointsAndRank(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddPoints(1, 45))

	total, rank, err := svc.PointsAndRank(1)
	require.NoError(t, err)
	assert.Equal(t, 45, total)
	assert.Equal(t, "Explorer", rank)
}
