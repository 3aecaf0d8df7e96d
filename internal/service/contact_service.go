package service

import (
	"strings"

	"go-contacts-api/internal/domain"
	"go-contacts-api/pkg/utils"
)

type ContactService struct {
	users    domain.UserRepository
	contacts domain.ContactRepository
}

func NewContactService(users domain.UserRepository, contacts domain.ContactRepository) *ContactService {
	return &ContactService{users: users, contacts: contacts}
}

type ContactInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

func (s *ContactService) List(ownerID string, f domain.ContactFilter) ([]domain.Contact, error) {
	cts, err := s.contacts.ListByOwner(ownerID, f)
	if err != nil {
		return nil, Internal("list contacts failed", err)
	}
	return cts, nil
}

func (s *ContactService) Get(id, ownerID string) (*domain.Contact, error) {
	ct, err := s.contacts.FindByID(id, ownerID)
	if err != nil {
		return nil, Internal("find contact failed", err)
	}
	if ct == nil {
		return nil, NotFound("contact not found")
	}
	return ct, nil
}

// Create 入库时按当前用户表推导 status，之后只在同步点（注册/删号/编辑）刷新
func (s *ContactService) Create(ownerID string, in ContactInput) (*domain.Contact, error) {
	if err := validateContact(&in); err != nil {
		return nil, err
	}
	status, err := s.deriveStatus(in.Email)
	if err != nil {
		return nil, err
	}
	ct := &domain.Contact{
		ID:      utils.NewID(),
		OwnerID: ownerID,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Notes:   in.Notes,
		Status:  status,
	}
	if err := s.contacts.Create(ct); err != nil {
		return nil, Internal("create contact failed", err)
	}
	return ct, nil
}

// Update 忽略客户端传入的 status，一律重新推导
func (s *ContactService) Update(id, ownerID string, in ContactInput) (*domain.Contact, error) {
	if err := validateContact(&in); err != nil {
		return nil, err
	}
	ct, err := s.contacts.FindByID(id, ownerID)
	if err != nil {
		return nil, Internal("find contact failed", err)
	}
	if ct == nil {
		return nil, NotFound("contact not found")
	}

	status, err := s.deriveStatus(in.Email)
	if err != nil {
		return nil, err
	}
	ct.Name = in.Name
	ct.Email = in.Email
	ct.Phone = in.Phone
	ct.Notes = in.Notes
	ct.Status = status

	n, err := s.contacts.Update(ct)
	if err != nil {
		return nil, Internal("update contact failed", err)
	}
	if n == 0 {
		return nil, NotFound("contact not found")
	}
	return ct, nil
}

func (s *ContactService) Delete(id, ownerID string) error {
	n, err := s.contacts.Delete(id, ownerID)
	if err != nil {
		return Internal("delete contact failed", err)
	}
	if n == 0 {
		return NotFound("contact not found")
	}
	return nil
}

func (s *ContactService) deriveStatus(email string) (string, error) {
	exists, err := s.users.EmailExists(email)
	if err != nil {
		return "", Internal("check email failed", err)
	}
	if exists {
		return domain.StatusRegistered, nil
	}
	return domain.StatusNotRegistered, nil
}

func validateContact(in *ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Name == "" {
		return BadRequest("name is required")
	}
	if in.Email == "" {
		return BadRequest("email is required")
	}
	return nil
}
