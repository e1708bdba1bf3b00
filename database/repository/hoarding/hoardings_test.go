package hoardingRepo

import (
	"context"
	"os"
	"testing"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// newTestClient returns a client for building refs. Without a running emulator
// it points at an unused local address and must not issue RPCs.
func newTestClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8681")
	}
	client, err := firestore.NewClient(context.Background(), "hoardify-test", option.WithoutAuthentication())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func hoardingRef(client *firestore.Client, category, id string) *firestore.DocumentRef {
	return client.Collection(database.CategoriesCollection).Doc(category).
		Collection(database.HoardingsCollection).Doc(id)
}

func TestClaim(t *testing.T) {
	client := newTestClient(t)
	want := map[string]bool{"h1": true, "h2": true}

	assert.True(t, claim(want, hoardingRef(client, "Ghost", "h1")), "category without a document")
	assert.False(t, claim(want, hoardingRef(client, "Downtown", "h1")), "first match wins")
	assert.False(t, claim(want, hoardingRef(client, "Downtown", "h3")))
	assert.False(t, claim(want, client.Collection(database.BookingsCollection).Doc("h2")))
	assert.False(t, claim(want, nil))

	assert.Equal(t, map[string]bool{"h2": true}, want)
}

func TestFindByID_CategoryWithoutDocument(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client := newTestClient(t)
	repo := NewFirestoreHoardingRepo(client)

	category := "orphan-" + uuid.NewString()
	id := uuid.NewString()
	ref := hoardingRef(client, category, id)
	_, err := ref.Set(ctx, models.Hoarding{Title: "Ring Road Unipole", Location: "Ring Road"})
	require.NoError(t, err)
	t.Cleanup(func() { ref.Delete(context.Background()) })

	h, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ring Road Unipole", h.Title)
	assert.Equal(t, category, h.CategoryID)

	found, err := repo.FindByIDs(ctx, []string{id, "missing-" + id})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = repo.FindByID(ctx, "missing-"+id)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
