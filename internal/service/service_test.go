package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.ClassSection{},
		&models.Subject{},
		&models.Timetable{},
		&models.DaySchedule{},
		&models.Period{},
		&models.Assessment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Attendance{},
		&models.AttendanceMark{},
		&models.Event{},
		&models.Fee{},
		&models.Payment{},
		&models.StudentFee{},
		&models.Settings{},
	))

	return db
}

func newTestValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func seedTeacher(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		UserID:    "T-" + uuid.NewString()[:8],
		FirstName: "Amina",
		LastName:  "Bello",
		Roles:     datatypes.JSONSlice[string]{models.RoleTeacher},
		Email:     email,
		Password:  string(hash),
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedStudent(t *testing.T, db *gorm.DB, gradeLevel string, active, archived bool) models.Student {
	t.Helper()

	student := models.Student{
		AdmissionNumber: "ADM-" + uuid.NewString()[:8],
		FirstName:       "Kemi",
		LastName:        "Adeyemi",
		DateOfBirth:     time.Date(2012, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:          "Female",
		GradeLevel:      gradeLevel,
		AdmissionDate:   time.Date(2023, 9, 4, 0, 0, 0, 0, time.UTC),
		PrimaryContact:  datatypes.JSON([]byte(`{"name":"Mrs Adeyemi","phone":"+2348000000000"}`)),
		Address:         datatypes.JSON([]byte(`{"city":"Abuja"}`)),
		IsActive:        active,
		Archived:        archived,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedSubject(t *testing.T, db *gorm.DB, name, code string, teachers ...models.User) models.Subject {
	t.Helper()

	subject := models.Subject{
		Name:        name,
		Code:        code,
		GradeLevels: datatypes.JSONSlice[string]{"Grade 5"},
		Teachers:    teachers,
	}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

func seedClass(t *testing.T, db *gorm.DB, name, academicYear string, teacher models.User, students ...models.Student) models.ClassSection {
	t.Helper()

	class := models.ClassSection{
		ClassName:      name,
		Grade:          "Grade 5",
		AcademicYear:   academicYear,
		ClassTeacherID: teacher.ID,
		MaxCapacity:    30,
		Status:         models.ClassStatusActive,
		Students:       students,
	}
	require.NoError(t, db.Create(&class).Error)
	return class
}
