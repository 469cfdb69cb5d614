package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/dimitrije/credential-vault/internal/models"
	"github.com/dimitrije/credential-vault/internal/testutil"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Integration_Scenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := testutil.SetupTestDB(t)
	svc := vault.NewService(NewStore(tdb.DB), nil)
	ctx := context.Background()

	for _, n := range []string{"1", "2", "3"} {
		require.NoError(t, svc.AddCredentials(ctx, "x", "name"+n, "username"+n, "password"+n, "note"+n))
	}

	records, err := svc.GetCredentials(ctx, "x")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "name1", records[0].Name)
	assert.Equal(t, "name3", records[2].Name)

	other, err := svc.GetCredentials(ctx, "y")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.DeleteCredentials(ctx, "x", "name2"))
	require.NoError(t, svc.UpdateCredentials(ctx, "x", "name3", "name4", "username4", "password4", ""))

	records, err = svc.GetCredentials(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{
		{Name: "name1", Username: "username1", Password: "password1", Note: "note1"},
		{Name: "name4", Username: "username4", Password: "password4"},
	}, records)

	err = svc.DeleteCredentials(ctx, "x", "missing")
	assert.ErrorIs(t, err, vault.ErrNotFound)
}

func TestStore_Integration_Owner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := testutil.SetupTestDB(t)
	store := NewStore(tdb.DB)
	ctx := context.Background()

	_, err := store.Owner(ctx)
	assert.ErrorIs(t, err, vault.ErrOwnerNotSet)

	owner, err := store.SetOwner(ctx, "deployer")
	require.NoError(t, err)
	assert.Equal(t, vault.Identity("deployer"), owner)

	owner, err = store.SetOwner(ctx, "intruder")
	require.NoError(t, err)
	assert.Equal(t, vault.Identity("deployer"), owner)
}

func TestStore_Integration_ConcurrentAppends(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := testutil.SetupTestDB(t)
	svc := vault.NewService(NewStore(tdb.DB), nil)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.AddCredentials(ctx, "x", "n", "u", "p", ""))
		}()
	}
	wg.Wait()

	records, err := svc.GetCredentials(ctx, "x")
	require.NoError(t, err)
	assert.Len(t, records, writers)
}
