package session

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayk98/mini-crm/internal/credential"
	"github.com/vinayk98/mini-crm/internal/model"
)

var sales = model.User{ID: 2, Email: "sales@gmail.com", Role: model.RoleSales}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(credential.New(keyring.NewArrayKeyring(nil)))

	_, err := m.Current()
	assert.True(t, errors.Is(err, ErrNoSession))

	s, err := m.Start(sales)
	require.NoError(t, err)
	assert.Equal(t, sales, s.User)
	assert.False(t, s.SignedInAt.IsZero())

	cur, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, cur.User.ID)

	require.NoError(t, m.End())
	_, err = m.Current()
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestManager_RestoreAcrossRuns(t *testing.T) {
	store := credential.New(keyring.NewArrayKeyring(nil))

	_, err := NewManager(store).Start(sales)
	require.NoError(t, err)

	next := NewManager(store)
	s, err := next.Restore()
	require.NoError(t, err)
	assert.Equal(t, sales, s.User)

	require.NoError(t, next.End())
	_, err = NewManager(store).Restore()
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestManager_WithoutPersister(t *testing.T) {
	m := NewManager(nil)

	_, err := m.Restore()
	assert.True(t, errors.Is(err, ErrNoSession))

	_, err = m.Start(sales)
	require.NoError(t, err)
	assert.NoError(t, m.End())
}

func TestManager_StartTransientForgetsRememberedSession(t *testing.T) {
	store := credential.New(keyring.NewArrayKeyring(nil))

	_, err := NewManager(store).Start(sales)
	require.NoError(t, err)

	m := NewManager(store)
	s, err := m.StartTransient(sales)
	require.NoError(t, err)
	assert.Equal(t, sales, s.User)

	cur, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, cur.User.ID)

	_, err = NewManager(store).Restore()
	assert.True(t, errors.Is(err, ErrNoSession))
}
