package pg

import (
	"errors"
	"fmt"
	"testing"
	"time"

	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/shared/domain"
	shared_errors "github.com/peerpods-dev/peerpods/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

func TestCreateUser(t *testing.T) {
	username := fmt.Sprintf("create_user_%d", time.Now().UnixNano())
	id, err := storage.CreateUser(domain.UserCreationData{Username: username, Bio: "hi", PassHash: "hash"})
	require.NoError(t, err, "CreateUser should not return an error")
	assert.Greater(t, id, domain.UserId(0), "User ID should be greater than 0")

	// Duplicate username maps to a conflict
	_, err = storage.CreateUser(domain.UserCreationData{Username: username, Bio: "", PassHash: "hash"})
	var statusErr *shared_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 409, statusErr.StatusCode)
}

func TestGetUser(t *testing.T) {
	username := fmt.Sprintf("get_user_%d", time.Now().UnixNano())
	id, err := storage.CreateUser(domain.UserCreationData{Username: username, Bio: "reader of books", PassHash: "hash"})
	require.NoError(t, err)

	user, err := storage.GetUser(id)
	require.NoError(t, err, "GetUser should not return an error")
	assert.Equal(t, id, user.Id)
	assert.Equal(t, domain.Username(username), user.Username)
	assert.Equal(t, domain.Bio("reader of books"), user.Bio)
	assert.Equal(t, "hash", user.PassHash)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = storage.GetUser(-1)
	assert.True(t, errors.Is(err, internal_errors.UserNotFound), "expected UserNotFound, got %v", err)
}

func TestGetUserByUsername(t *testing.T) {
	username := fmt.Sprintf("by_name_%d", time.Now().UnixNano())
	id, err := storage.CreateUser(domain.UserCreationData{Username: username, PassHash: "hash"})
	require.NoError(t, err)

	user, err := storage.GetUserByUsername(domain.Username(username))
	require.NoError(t, err)
	assert.Equal(t, id, user.Id)

	_, err = storage.GetUserByUsername("no_such_user")
	assert.True(t, errors.Is(err, internal_errors.UserNotFound))
}

func TestUpdateUserBio(t *testing.T) {
	id := createTestUser(t)

	err := storage.UpdateUserBio(id, "updated bio")
	require.NoError(t, err, "UpdateUserBio should not return an error")

	user, err := storage.GetUser(id)
	require.NoError(t, err)
	assert.Equal(t, domain.Bio("updated bio"), user.Bio)

	err = storage.UpdateUserBio(-1, "whatever")
	assert.True(t, errors.Is(err, internal_errors.UserNotFound))
}
