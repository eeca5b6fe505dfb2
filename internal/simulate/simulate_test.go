package simulate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/models"
)

func TestHunt_Spirit(t *testing.T) {
	catalog, err := models.LoadDefault()
	require.NoError(t, err)
	spirit, _ := catalog.Lookup("spirit")

	out, err := Hunt(context.Background(), engine.New(catalog), spirit)
	require.NoError(t, err)

	var checks []models.EvidenceKind
	for _, s := range out.Steps {
		checks = append(checks, s.Evidence)
		assert.True(t, s.Found, "spirit shows %s", s.Evidence)
	}
	if diff := cmp.Diff([]models.EvidenceKind{models.SpiritBox, models.GhostWriting, models.EMF}, checks); diff != "" {
		t.Errorf("Check order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, out.Identified)
	assert.Empty(t, out.Tied)
	assert.Equal(t, engine.SummaryIdentified, out.Summary.Kind)
	assert.Equal(t, 1, out.Steps[len(out.Steps)-1].Remaining)
}

func TestRun_DefaultCatalog(t *testing.T) {
	catalog, err := models.LoadDefault()
	require.NoError(t, err)

	outcomes, err := Run(context.Background(), catalog, 4)
	require.NoError(t, err)
	require.Len(t, outcomes, catalog.Len())

	for i, o := range outcomes {
		assert.Equal(t, catalog.Ghosts[i].ID, o.Ghost.ID, "outcomes keep catalog order")
		assert.True(t, o.Identified, o.Ghost.ID)
		assert.GreaterOrEqual(t, o.Checks(), 3, o.Ghost.ID)
		assert.LessOrEqual(t, o.Checks(), 7, o.Ghost.ID)
	}

	stats := Summarize(outcomes)
	assert.Equal(t, 24, stats.Hunts)
	assert.Equal(t, 24, stats.Identified)
	assert.Equal(t, 0, stats.Tied)
	assert.Equal(t, 134, stats.TotalChecks)
	assert.Equal(t, 7, stats.MostChecks)
	assert.Equal(t, "Yurei", stats.HardestGhost)
	assert.InDelta(t, 5.58, stats.AverageChecks(), 0.01)
}

func TestRun_SameResultAtAnyParallelism(t *testing.T) {
	catalog, err := models.LoadDefault()
	require.NoError(t, err)

	serial, err := Run(context.Background(), catalog, 1)
	require.NoError(t, err)
	parallel, err := Run(context.Background(), catalog, 16)
	require.NoError(t, err)

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("Parallel run differs (-serial +parallel):\n%s", diff)
	}
}

func TestRun_ReportsTies(t *testing.T) {
	catalog := &models.Catalog{Ghosts: []models.Ghost{
		{ID: "a", Name: "A", Evidence: []models.EvidenceKind{models.EMF, models.DOTS}},
		{ID: "b", Name: "B", Evidence: []models.EvidenceKind{models.EMF, models.DOTS}},
		{ID: "c", Name: "C", Evidence: []models.EvidenceKind{models.GhostOrb}},
	}}

	outcomes, err := Run(context.Background(), catalog, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, outcomes[0].Tied)
	assert.Equal(t, []string{"A"}, outcomes[1].Tied)
	assert.Empty(t, outcomes[2].Tied)
	assert.Equal(t, engine.SummaryAmbiguous, outcomes[0].Summary.Kind)

	stats := Summarize(outcomes)
	assert.Equal(t, 2, stats.Tied)
	assert.Equal(t, 1, stats.Identified)
}

func TestRun_Cancelled(t *testing.T) {
	catalog, err := models.LoadDefault()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, catalog, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RejectsZeroParallel(t *testing.T) {
	_, err := Run(context.Background(), &models.Catalog{}, 0)
	assert.Error(t, err)
}

func TestRun_NilOrEmptyCatalog(t *testing.T) {
	for _, catalog := range []*models.Catalog{nil, {}} {
		outcomes, err := Run(context.Background(), catalog, 2)
		require.NoError(t, err)
		assert.Empty(t, outcomes)
	}
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.AverageChecks())
}
