package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-cache/models"
)

func secret(id, name string) models.Secret {
	return models.Secret{ID: id, Name: name, Login: "user"}
}

func TestPut_ThenGetByID(t *testing.T) {
	c := New[models.Secret]()

	require.NoError(t, c.Put(secret("a", "mail")))

	got, ok := c.GetByID("a")
	require.True(t, ok)
	assert.Equal(t, "mail", got.Name)
}

func TestPut_EmptyKeyRejected(t *testing.T) {
	c := New[models.Secret]()

	err := c.Put(models.Secret{Name: "no id"})
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Zero(t, c.Len())
}

func TestPut_SameKeyReplaces(t *testing.T) {
	c := New[models.Secret]()

	require.NoError(t, c.Put(secret("a", "old")))
	require.NoError(t, c.Put(secret("a", "new")))

	assert.Equal(t, 1, c.Len())
	got, _ := c.GetByID("a")
	assert.Equal(t, "new", got.Name)
}

func TestDelete_RemovesFromMapAndIndex(t *testing.T) {
	c := New[models.Secret]()

	require.NoError(t, c.Put(secret("a", "mail")))
	c.Delete("a")

	_, ok := c.GetByID("a")
	assert.False(t, ok)
	assert.Empty(t, c.GetAll())
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	c := New[models.Secret]()

	require.NoError(t, c.Put(secret("a", "mail")))
	c.Delete("zz")

	assert.Equal(t, 1, c.Len())
}

func TestGetAll_OrderedByKey(t *testing.T) {
	c := New[models.Secret]()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, c.Put(secret(id, id)))
	}

	all := c.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestGetAll_ReturnsSnapshotCopy(t *testing.T) {
	c := New[models.Secret]()
	require.NoError(t, c.Put(secret("a", "mail")))

	all := c.GetAll()
	all[0].Name = "mutated"

	got, _ := c.GetByID("a")
	assert.Equal(t, "mail", got.Name, "mutating the snapshot must not affect the cache")
}

func TestSelect_FiltersByPredicate(t *testing.T) {
	c := New[models.Secret]()
	require.NoError(t, c.Put(secret("a", "mail")))
	require.NoError(t, c.Put(secret("b", "bank")))
	require.NoError(t, c.Put(secret("c", "mail-backup")))

	got := c.Select(func(s models.Secret) bool { return strings.HasPrefix(s.Name, "mail") })
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestRange_HalfOpenInterval(t *testing.T) {
	c := New[models.Secret]()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Put(secret(id, id)))
	}

	got := c.Range("b", "d")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestRange_OpenEnd(t *testing.T) {
	c := New[models.Secret]()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, c.Put(secret(id, id)))
	}

	got := c.Range("b", "")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestReplace_SwapsContents(t *testing.T) {
	c := New[models.Secret]()
	require.NoError(t, c.Put(secret("old", "old")))

	require.NoError(t, c.Replace([]models.Secret{secret("a", "one"), secret("b", "two")}))

	_, ok := c.GetByID("old")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestReplace_EmptyKeyLeavesCacheUntouched(t *testing.T) {
	c := New[models.Secret]()
	require.NoError(t, c.Put(secret("keep", "keep")))

	err := c.Replace([]models.Secret{secret("a", "one"), {Name: "no id"}})
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, ok := c.GetByID("keep")
	assert.True(t, ok, "failed replace must not modify existing contents")
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	c := New[models.Secret]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Put(secret(fmt.Sprintf("id-%d-%d", n, j), "x"))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.GetAll()
				c.Range("id-0", "id-9")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, c.Len())
}
