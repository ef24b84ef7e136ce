package storage

import (
	"errors"
	"fmt"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) AddSkill(skill *models.Skill) error {
	if err := s.DB.Create(skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("skill %q already on profile: %w", skill.Name, apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Service) GetSkillByID(id uint) (*models.Skill, error) {
	var skill models.Skill
	err := s.DB.First(&skill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("skill %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *Service) ListSkills(userID, kind string) ([]models.Skill, error) {
	var skills []models.Skill
	q := s.DB.Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Order("name asc").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// ListSkillsByNames returns skill rows of the given kind whose name is in
// names, across all users. The matcher uses this to find counterparts.
func (s *Service) ListSkillsByNames(names []string, kind string) ([]models.Skill, error) {
	var skills []models.Skill
	if len(names) == 0 {
		return skills, nil
	}
	err := s.DB.Where("name IN ? AND kind = ?", names, kind).Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *Service) DeleteSkill(id uint) error {
	return s.DB.Delete(&models.Skill{}, id).Error
}

func (s *Service) AddLanguage(lang *models.Language) error {
	if err := s.DB.Create(lang).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("language %q already on profile: %w", lang.Name, apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Service) GetLanguageByID(id uint) (*models.Language, error) {
	var lang models.Language
	err := s.DB.First(&lang, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("language %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

func (s *Service) ListLanguages(userID string) ([]models.Language, error) {
	var langs []models.Language
	if err := s.DB.Where("user_id = ?", userID).Order("name asc").Find(&langs).Error; err != nil {
		return nil, err
	}
	return langs, nil
}

func (s *Service) DeleteLanguage(id uint) error {
	return s.DB.Delete(&models.Language{}, id).Error
}
