package repositories_test

import (
	"errors"
	"testing"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMProductRepository_Lifecycle(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	p := &models.Product{Name: "Teh Botol", Details: []models.ProductDetail{{Unit: "pcs", Price: 5000}, {Unit: "crate", Price: 110000}}}
	require.NoError(t, repo.Create(p))
	require.NotEmpty(t, p.ID)
	require.NotEmpty(t, p.Details[0].ID)

	missing, err := repo.MissingDetails([]string{p.Details[0].ID, "nope", p.Details[1].ID, "nope"})
	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, missing)

	p.Name = "Teh Botol Sosro"
	p.Details = []models.ProductDetail{{Unit: "pack", Price: 27000}}
	require.NoError(t, repo.Update(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teh Botol Sosro", got.Name)
	require.Len(t, got.Details, 1)
	assert.Equal(t, "pack", got.Details[0].Unit)

	page, err := repo.List(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, repo.Delete(p.ID))
	_, err = repo.GetByID(p.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(p.ID), repositories.ErrNotFound))
	assert.True(t, errors.Is(repo.Update(&models.Product{ID: "ghost", Name: "Ghost"}), repositories.ErrNotFound))
}

func TestGORMUserRepository_ListHidesPasswords(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	for _, name := range []string{"budi", "ani"} {
		require.NoError(t, repo.Create(&models.User{Username: name, Email: name + "@toko.id", Password: "hash", Role: models.RoleOutlet}))
	}

	page, err := repo.List(1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "ani", page.Data[0].Username)
	assert.Empty(t, page.Data[0].Password)

	u, err := repo.GetByUsername("budi")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.Password)

	_, err = repo.GetByEmail("nobody@toko.id")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
