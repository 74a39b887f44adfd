package services

import (
	"regexp"
	"strings"

	"taskpilot/internal/models"
)

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`\d`)
)

// FieldErrors — пофилдовые ошибки валидации регистрации.
// Поправимы пользователем, отдаются наружу как 400 {success:false, errors}.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	var parts []string
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// ValidateRegistration проверяет полный payload регистрации: те же правила
// при запросе OTP и при создании аккаунта. Возвращает nil, если всё чисто.
func ValidateRegistration(req *models.RegistrationRequest, users UserService) (FieldErrors, error) {
	errs := FieldErrors{}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		errs.add("username", "Username must be at least 3 characters long.")
	} else {
		taken, err := users.ExistsByUsername(username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.add("username", "username already exist it should be unique")
		}
	}

	email := strings.TrimSpace(req.Email)
	if !emailRe.MatchString(email) {
		errs.add("email", "Enter a valid email address.")
	} else {
		taken, err := users.ExistsByEmail(email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.add("email", "user with this email already exist it should be unique")
		}
	}

	if len(req.Password) < 8 {
		errs.add("password", "Password must be at least 8 characters long.")
	} else if !letterRe.MatchString(req.Password) || !digitRe.MatchString(req.Password) {
		errs.add("password", "Password must contain at least one letter and one number.")
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}
