package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bricks_backend/internal/middleware"
	"bricks_backend/pkg/apperror"
)

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindPreconditionFailed:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError hatayı türüne göre HTTP cevabına çevirir. Internal
// hataların nedeni loglanır, istemciye gönderilmez.
func respondError(c *fiber.Ctx, err error) error {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		middleware.Log(c).WithError(err).Error("Request failed")
	}

	body := fiber.Map{
		"error": appErr.Message,
		"code":  appErr.Code,
	}
	for k, v := range appErr.Details {
		body[k] = v
	}
	return c.Status(statusFor(appErr.Kind)).JSON(body)
}

var (
	errInvalidInput       = apperror.New(apperror.KindPreconditionFailed, "invalid_input", "Invalid input")
	errInvalidID          = apperror.New(apperror.KindPreconditionFailed, "invalid_id", "Invalid ID")
	errInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid_credentials", "Invalid credentials")
)

// invalid verilen mesajla bir doğrulama hatası döner
func invalid(message string) *apperror.Error {
	return apperror.New(apperror.KindPreconditionFailed, "validation_failed", message)
}

// paramID yol parametresini pozitif bir id olarak okur
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// duplicateAs eşzamanlı bir kayıt unique index'e takıldığında err yerine
// target döner. Ön kontrol ile Create arasındaki yarış bu şekilde kapanır.
func duplicateAs(err, target error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return target
	}
	return err
}
