package service

import (
	"context"

	repository "github.com/ds124wfegd/eventhub/internal/database/postgres"
	"github.com/ds124wfegd/eventhub/internal/entity"
)

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Country     string `json:"country" binding:"required"`
	ZipCode     string `json:"zip_code" binding:"required"`
	Capacity    int    `json:"capacity" binding:"min=0"`
	Description string `json:"description"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
	ZipCode     *string `json:"zip_code,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type locationService struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) Create(ctx context.Context, req *CreateLocationRequest) (*entity.Location, error) {
	location := &entity.Location{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		ZipCode:     req.ZipCode,
		Capacity:    req.Capacity,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

func (s *locationService) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) GetAll(ctx context.Context) ([]*entity.Location, error) {
	return s.locationRepo.GetAll(ctx)
}

func (s *locationService) Update(ctx context.Context, id int64, req *UpdateLocationRequest) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.City != nil {
		location.City = *req.City
	}
	if req.State != nil {
		location.State = *req.State
	}
	if req.Country != nil {
		location.Country = *req.Country
	}
	if req.ZipCode != nil {
		location.ZipCode = *req.ZipCode
	}
	if req.Capacity != nil {
		location.Capacity = *req.Capacity
	}
	if req.Description != nil {
		location.Description = *req.Description
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

func (s *locationService) Delete(ctx context.Context, id int64) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return location, nil
}
