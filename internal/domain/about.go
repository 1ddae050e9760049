package domain

import (
	"context"

	"github.com/yatube-lab/backend/internal/model"
)

type AboutDomain interface {
	Author(context.Context, *model.AboutAuthorRequest) (*model.AboutAuthorResponse, error)
	Tech(context.Context, *model.AboutTechRequest) (*model.AboutTechResponse, error)
}

type aboutDomain struct{}

func NewAboutDomain() *aboutDomain {
	return &aboutDomain{}
}

func (d *aboutDomain) Author(context.Context, *model.AboutAuthorRequest) (*model.AboutAuthorResponse, error) {
	return &model.AboutAuthorResponse{}, nil
}

func (d *aboutDomain) Tech(context.Context, *model.AboutTechRequest) (*model.AboutTechResponse, error) {
	return &model.AboutTechResponse{}, nil
}
