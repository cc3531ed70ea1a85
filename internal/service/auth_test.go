package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/repository"
	"github.com/lortega/product-catalog-api/internal/utils"
)

// fakeUserStore is an in-memory UserStore with the same sentinel behavior
// as the Mongo repository, including the unique email constraint.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return nil, repository.ErrEmailExists
	}
	u.ID = primitive.NewObjectID()
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestService(t *testing.T) (*AuthService, *fakeUserStore, *utils.TokenIssuer) {
	t.Helper()
	store := newFakeUserStore()
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(store, issuer, bcrypt.MinCost), store, issuer
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()
	svc, _, issuer := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ana", "  Ana@X.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", created.Email, "email must be trimmed and lowercased")
	assert.Equal(t, model.RoleUser, created.Role)
	assert.True(t, created.Active)

	user, token, ttl, err := svc.Authenticate(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, time.Hour, ttl)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.Subject, "token subject must match the registered account")
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, _, _, wrongSecret := svc.Authenticate(ctx, "ana@x.com", "wrong")
	_, _, _, unknownEmail := svc.Authenticate(ctx, "nobody@x.com", "whatever")

	assert.ErrorIs(t, wrongSecret, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongSecret, unknownEmail, "the two failure modes must be the same error kind")
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	// Token issued while the account was still active.
	_, token, _, err := svc.Authenticate(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)

	u, err := store.FindByEmail(ctx, created.Email)
	require.NoError(t, err)
	u.Active = false

	_, _, _, err = svc.Authenticate(ctx, "ana@x.com", "secret1")
	assert.ErrorIs(t, err, ErrAccountDisabled)

	// The token's signature and expiry are still valid, but the subject is
	// no longer active.
	_, err = svc.ResolveAndVerify(ctx, token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Ana2", "ana@x.com", "secret2")
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	// Same outcome when only the normalization differs.
	_, err = svc.Register(ctx, "Ana3", " ANA@X.COM ", "secret3")
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestRegister_SecretTooShort(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "Ana", "ana@x.com", "12345")
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestResolveAndVerify_DeletedSubject(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	_, token, _, err := svc.Authenticate(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)

	store.mu.Lock()
	delete(store.users, "ana@x.com")
	store.mu.Unlock()

	_, err = svc.ResolveAndVerify(ctx, token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestResolveAndVerify_GarbageToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	_, err := svc.ResolveAndVerify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
