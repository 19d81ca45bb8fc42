package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// UpsertProfileRequest represents a creator profile create-or-update request.
// Nil fields are left unchanged on update.
type UpsertProfileRequest struct {
	DisplayName          *string          `json:"display_name" binding:"omitempty,min=1,max=100"`
	Bio                  *string          `json:"bio" binding:"omitempty,max=1000"`
	ProfileImageURL      *string          `json:"profile_image_url" binding:"omitempty,url,max=500"`
	Niche                *string          `json:"niche" binding:"omitempty,min=1,max=100"`
	SubNiches            *[]string        `json:"sub_niches" binding:"omitempty,max=20,dive,max=100"`
	ContentStyle         *string          `json:"content_style" binding:"omitempty,oneof=educational entertainment vlogs tutorials reviews comedy howto unknown"`
	Platforms            map[string]int64 `json:"platforms" binding:"omitempty,max=20"`
	OpenToCollabs        *bool            `json:"open_to_collabs"`
	CollabInterests      *[]string        `json:"collab_interests" binding:"omitempty,max=20,dive,max=100"`
	PreferredMinAudience *int64           `json:"preferred_min_audience" binding:"omitempty,min=0"`
	PreferredMaxAudience *int64           `json:"preferred_max_audience" binding:"omitempty,min=0"`
}

// CreateOrUpdate creates the caller's profile on first use and patches it afterwards.
// The returned bool reports whether a new profile was created.
func (uc *ProfileUseCase) CreateOrUpdate(ctx context.Context, userID int, req *UpsertProfileRequest) (*domain.CreatorProfile, bool, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	created := false
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		if req.DisplayName == nil || strings.TrimSpace(*req.DisplayName) == "" ||
			req.Niche == nil || strings.TrimSpace(*req.Niche) == "" {
			return nil, false, domain.ErrProfileFieldsMissing
		}
		profile = &domain.CreatorProfile{
			UserID:        userID,
			ContentStyle:  domain.StyleUnknown,
			OpenToCollabs: true,
			Platforms:     domain.Platforms{},
		}
		created = true
	case err != nil:
		return nil, false, err
	}

	if err := apply(profile, req); err != nil {
		return nil, false, err
	}

	if created {
		err = uc.profileRepo.Create(ctx, profile)
	} else {
		err = uc.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, false, err
	}
	return profile, created, nil
}

func apply(p *domain.CreatorProfile, req *UpsertProfileRequest) error {
	if (req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "") ||
		(req.Niche != nil && strings.TrimSpace(*req.Niche) == "") {
		return domain.ErrProfileFieldsMissing
	}
	if req.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.ProfileImageURL != nil {
		p.ProfileImageURL = req.ProfileImageURL
	}
	if req.Niche != nil {
		p.Niche = strings.TrimSpace(*req.Niche)
	}
	if req.SubNiches != nil {
		p.SubNiches = cleanList(*req.SubNiches)
	}
	if req.ContentStyle != nil {
		p.ContentStyle = domain.ContentStyle(*req.ContentStyle).Normalize()
	}
	if req.Platforms != nil {
		if err := p.SetPlatforms(req.Platforms); err != nil {
			return err
		}
	}
	if req.OpenToCollabs != nil {
		p.OpenToCollabs = *req.OpenToCollabs
	}
	if req.CollabInterests != nil {
		p.CollabInterests = cleanList(*req.CollabInterests)
	}
	if req.PreferredMinAudience != nil {
		p.PreferredMinAudience = *req.PreferredMinAudience
	}
	if req.PreferredMaxAudience != nil {
		if *req.PreferredMaxAudience == 0 {
			p.PreferredMaxAudience = nil
		} else {
			v := *req.PreferredMaxAudience
			p.PreferredMaxAudience = &v
		}
	}
	if p.PreferredMaxAudience != nil && *p.PreferredMaxAudience < p.PreferredMinAudience {
		return domain.NewError(domain.KindValidation, "preferred_max_audience must not be below preferred_min_audience")
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int) (*domain.CreatorProfile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, profileID int) (*domain.CreatorProfile, error) {
	return uc.profileRepo.GetByID(ctx, profileID)
}
