package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.Account{}))
	return db
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestInsertAndFind(t *testing.T) {
	db := newTestDB(t)
	r := Provide()
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, db, []accountdomain.Account{
		{AccountID: "ACC-1", CustomerName: strPtr("Alpha Co"), OrderLimit: int64Ptr(5)},
		{AccountID: "ACC-2"},
	}))

	found, err := r.FindByID(ctx, db, "ACC-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "Alpha Co", *found.CustomerName)
	require.Equal(t, int64(5), *found.OrderLimit)

	// Nullable attributes survive the round trip as nils.
	bare, err := r.FindByID(ctx, db, "ACC-2")
	require.NoError(t, err)
	require.NotNil(t, bare)
	require.Nil(t, bare.CustomerName)
	require.Nil(t, bare.OrderLimit)

	missing, err := r.FindByID(ctx, db, "ACC-404")
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := r.List(ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "ACC-1", all[0].AccountID)
}
