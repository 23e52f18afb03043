package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leave-backend/dto"
	"leave-backend/internal/apperror"
	"leave-backend/internal/models"
	"leave-backend/internal/repository"
)

type OrganizationService interface {
	Create(ctx context.Context, req dto.CreateOrganizationsReq) ([]models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
	// LeaveTypeNames looks the organization up by organization_id.
	LeaveTypeNames(ctx context.Context, organizationID string) ([]string, error)
	// AddLeaveType appends to the organization with the given _id.
	AddLeaveType(ctx context.Context, id string, req dto.LeaveTypeReq) (*models.Organization, error)
	Delete(ctx context.Context, id string) error
}

type organizationService struct {
	orgs   repository.OrganizationRepository
	logger *zap.Logger
}

func NewOrganizationService(store repository.Store, logger ...*zap.Logger) OrganizationService {
	return &organizationService{
		orgs:   store.Organizations,
		logger: named("organization.service", logger),
	}
}

func toLeaveType(req dto.LeaveTypeReq) models.LeaveType {
	id := strings.TrimSpace(req.LeaveTypeID)
	if id == "" {
		id = uuid.NewString()
	}
	return models.LeaveType{
		LeaveTypeID:         id,
		LeaveTypeName:       strings.TrimSpace(req.LeaveTypeName),
		NumberOfDaysAllowed: req.NumberOfDaysAllowed,
	}
}

func (s *organizationService) Create(ctx context.Context, req dto.CreateOrganizationsReq) ([]models.Organization, error) {
	if len(req) == 0 {
		return nil, apperror.InvalidInput("at least one organization is required")
	}

	orgs := make([]models.Organization, 0, len(req))
	for _, r := range req {
		o := models.Organization{
			OrganizationID: strings.TrimSpace(r.OrganizationID),
			LeaveTypes:     make([]models.LeaveType, 0, len(r.LeaveTypes)),
		}
		for _, lt := range r.LeaveTypes {
			o.LeaveTypes = append(o.LeaveTypes, toLeaveType(lt))
		}
		orgs = append(orgs, o)
	}

	created, err := s.orgs.InsertMany(ctx, orgs)
	if err != nil {
		return nil, s.fail("create organizations", err, nil)
	}
	s.logger.Info("create organizations success", zap.Int("count", len(created)))
	return created, nil
}

func (s *organizationService) List(ctx context.Context) ([]models.Organization, error) {
	orgs, err := s.orgs.FindAll(ctx)
	if err != nil {
		return nil, s.fail("list organizations", err, nil)
	}
	return orgs, nil
}

func (s *organizationService) LeaveTypeNames(ctx context.Context, organizationID string) ([]string, error) {
	org, err := s.orgs.FindByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, s.fail("leave type names", err, ErrOrganizationNotFound,
			zap.String("organization_id", organizationID))
	}

	names := make([]string, 0, len(org.LeaveTypes))
	for _, lt := range org.LeaveTypes {
		names = append(names, lt.LeaveTypeName)
	}
	return names, nil
}

func (s *organizationService) AddLeaveType(ctx context.Context, id string, req dto.LeaveTypeReq) (*models.Organization, error) {
	oid, err := parseID(id, "Organization Id")
	if err != nil {
		return nil, err
	}

	org, err := s.orgs.AddLeaveType(ctx, oid, toLeaveType(req))
	if err != nil {
		return nil, s.fail("add leave type", err, ErrOrganizationNotFound, zap.String("id", id))
	}
	s.logger.Info("add leave type success",
		zap.String("id", id),
		zap.String("leave_type_name", req.LeaveTypeName),
	)
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, "Organization Id")
	if err != nil {
		return err
	}
	if err := s.orgs.Delete(ctx, oid); err != nil {
		return s.fail("delete organization", err, ErrOrganizationNotFound, zap.String("id", id))
	}
	s.logger.Info("delete organization success", zap.String("id", id))
	return nil
}

func (s *organizationService) fail(msg string, err error, notFound *apperror.AppError, fields ...zap.Field) error {
	mapped := storeErr(err, notFound)
	logFailure(s.logger, msg, err, mapped, fields...)
	return mapped
}
