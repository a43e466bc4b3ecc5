package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bricks_backend/internal/middleware"
	"bricks_backend/internal/model"
	"bricks_backend/pkg/apperror"
	"bricks_backend/pkg/utils/validation"
)

var errEmailExists = apperror.New(apperror.KindPreconditionFailed, "email_exists", "Email already exists")

type RegisterInput struct {
	FName    string `json:"fname" validate:"required"`
	LName    string `json:"lname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Country  string `json:"country" validate:"required"`
	Pincode  string `json:"pincode" validate:"required,pincode"`
	Password string `json:"password" validate:"required"`
}

func (in *RegisterInput) contact() model.Contact {
	return model.Contact{
		FName:   strings.TrimSpace(in.FName),
		LName:   strings.TrimSpace(in.LName),
		Email:   normalizeEmail(in.Email),
		Phone:   in.Phone,
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Country: strings.TrimSpace(in.Country),
		Pincode: in.Pincode,
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthController alıcı ve satıcı kaydı ile şifre kontrolü yapar.
// Oturum ya da token üretilmez.
type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// register girdiyi doğrular, email'in boş olduğunu kontrol eder ve
// şifreyi hashler. account email kontrolünde kullanılan modeldir.
func (a *AuthController) register(c *fiber.Ctx, account interface{}) (model.Contact, string, error) {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return model.Contact{}, "", errInvalidInput
	}
	if err := validation.Struct(input); err != nil {
		return model.Contact{}, "", invalid(err.Error())
	}

	contact := input.contact()
	err := a.db.WithContext(c.UserContext()).Where("email = ?", contact.Email).First(account).Error
	if err == nil {
		return model.Contact{}, "", errEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Contact{}, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Contact{}, "", err
	}
	return contact, string(hashedPassword), nil
}

func (a *AuthController) RegisterSeller(c *fiber.Ctx) error {
	contact, hash, err := a.register(c, &model.Seller{})
	if err != nil {
		return respondError(c, err)
	}

	seller := model.Seller{Contact: contact, Password: hash}
	if err := a.db.WithContext(c.UserContext()).Create(&seller).Error; err != nil {
		return respondError(c, duplicateAs(err, errEmailExists))
	}

	middleware.Log(c).WithField("seller_id", seller.ID).Info("Seller registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"seller":  seller.GetPublicProfile(),
	})
}

func (a *AuthController) RegisterBuyer(c *fiber.Ctx) error {
	contact, hash, err := a.register(c, &model.Buyer{})
	if err != nil {
		return respondError(c, err)
	}

	buyer := model.Buyer{Contact: contact, Password: hash}
	if err := a.db.WithContext(c.UserContext()).Create(&buyer).Error; err != nil {
		return respondError(c, duplicateAs(err, errEmailExists))
	}

	middleware.Log(c).WithField("buyer_id", buyer.ID).Info("Buyer registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"buyer":   buyer.GetPublicProfile(),
	})
}

// authenticate hesabı email ile yükler ve şifreyi karşılaştırır.
// password hesap yüklendikten sonra çağrılır.
func (a *AuthController) authenticate(c *fiber.Ctx, account interface{}, password func() string) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return errInvalidInput
	}
	if err := validation.Struct(input); err != nil {
		return invalid("Email and password are required")
	}

	err := a.db.WithContext(c.UserContext()).Where("email = ?", normalizeEmail(input.Email)).First(account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errInvalidCredentials
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(password()), []byte(input.Password)); err != nil {
		return errInvalidCredentials
	}
	return nil
}

// recordLogin giriş kaydı yazar. Hata girişi engellemez.
func (a *AuthController) recordLogin(c *fiber.Ctx, accountType string, accountID uint) {
	entry := model.LoginHistory{
		AccountType: accountType,
		AccountID:   accountID,
		Device:      truncate(c.Get(fiber.HeaderUserAgent), 255),
		IP:          c.IP(),
	}
	if err := a.db.WithContext(c.UserContext()).Create(&entry).Error; err != nil {
		middleware.Log(c).WithError(err).Warn("Could not record login history")
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (a *AuthController) LoginSeller(c *fiber.Ctx) error {
	var seller model.Seller
	if err := a.authenticate(c, &seller, func() string { return seller.Password }); err != nil {
		return respondError(c, err)
	}
	a.recordLogin(c, model.AccountSeller, seller.ID)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"seller":  seller.GetPublicProfile(),
	})
}

func (a *AuthController) LoginBuyer(c *fiber.Ctx) error {
	var buyer model.Buyer
	if err := a.authenticate(c, &buyer, func() string { return buyer.Password }); err != nil {
		return respondError(c, err)
	}
	a.recordLogin(c, model.AccountBuyer, buyer.ID)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"buyer":   buyer.GetPublicProfile(),
	})
}
