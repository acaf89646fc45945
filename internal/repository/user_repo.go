package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// UserRepository defines persistence operations for staff and parent accounts.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ListByRoles(ctx context.Context, roles []string) ([]models.User, error)
	Departments(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (models.User, error)
	ExistsEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsUserID(ctx context.Context, userID string, excludeID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("last_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRoles matches accounts carrying any of the given roles. Roles are a
// JSON array column, so the match walks the serialized value.
func (r *userRepository) ListByRoles(ctx context.Context, roles []string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("last_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		wanted[role] = struct{}{}
	}

	matched := make([]models.User, 0, len(users))
	for _, user := range users {
		for _, role := range user.Roles {
			if _, ok := wanted[role]; ok {
				matched = append(matched, user)
				break
			}
		}
	}
	return matched, nil
}

func (r *userRepository) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("department <> ''").
		Distinct().
		Pluck("department", &departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Subjects").First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("refresh_token = ?", token).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) ExistsEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *userRepository) ExistsUserID(ctx context.Context, userID string, excludeID uint) (bool, error) {
	return r.exists(ctx, "user_id = ?", userID, excludeID)
}

func (r *userRepository) exists(ctx context.Context, condition string, value string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where(condition, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
