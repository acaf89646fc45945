package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		newTestValidator(),
		testLogger(),
	)
}

func accountPayload(userID, email string) dto.UserCreateRequest {
	return dto.UserCreateRequest{
		UserID:    userID,
		FirstName: "Amina",
		LastName:  "Bello",
		Roles:     []string{models.RoleTeacher},
		Email:     email,
		Password:  "correct-horse-battery",
	}
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, accountPayload("STF-001", "amina@school.test"))
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse-battery", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("correct-horse-battery")))

	_, err = svc.Create(ctx, accountPayload("STF-002", "amina@school.test"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserCreateRejectsDuplicateUserID(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, accountPayload("STF-010", "first@school.test"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, accountPayload("STF-010", "second@school.test"))
	assert.ErrorIs(t, err, ErrUserIDTaken)
}

func TestUserUpdateRejectsEmailTakenByAnother(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, accountPayload("STF-020", "kept@school.test"))
	require.NoError(t, err)

	other, err := svc.Create(ctx, accountPayload("STF-021", "other@school.test"))
	require.NoError(t, err)

	taken := "kept@school.test"
	_, err = svc.Update(ctx, other.ID, dto.UserUpdateRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
