package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/utils"
)

// CustomerAuthService handles end-user sign-up and sign-in on the public
// site. Customer identities are entirely separate from admin accounts.
type CustomerAuthService struct {
	customers *repository.CustomerRepository
	jwtSecret string
}

// NewCustomerAuthService creates a new CustomerAuthService.
func NewCustomerAuthService(customers *repository.CustomerRepository, jwtSecret string) *CustomerAuthService {
	return &CustomerAuthService{customers: customers, jwtSecret: jwtSecret}
}

// Register creates a new customer account.
func (s *CustomerAuthService) Register(name, email, phone, password string, company *string) (*models.Customer, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Phone:        phone,
		Company:      company,
	}
	if err := s.customers.Create(customer); err != nil {
		return nil, err
	}

	log.Info().Int("customer_id", customer.ID).Str("email", email).Msg("customer registered")
	return customer, nil
}

// Login verifies credentials and mints a customer session token.
func (s *CustomerAuthService) Login(email, password string) (string, error) {
	customer, err := s.customers.GetByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}
	return utils.GenerateJWT(customer.ID, customer.Email, utils.RoleCustomer, s.jwtSecret)
}

// GetByID returns a customer profile.
func (s *CustomerAuthService) GetByID(id int) (*models.Customer, error) {
	return s.customers.GetByID(id)
}
